package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-inteligente/internal/application/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/infrastructure/memory"
)

func TestReplenishment_SinProductosBajos(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "ok", 10, 2)
	uc := inventory.NewReplenishmentUseCase(store.Repositories().Products, store.Dashboard())

	out, err := uc.Suggestions(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestReplenishment_CantidadesYPrioridad(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	now := time.Now()

	// costo 2, precio 3: margen de lista 33.33%
	seedProduct(t, store, "lista", 1, 5)
	// se vendió con buen margen: debe quedar primero
	seedProduct(t, store, "vendido", 2, 4)
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{
		ID: "s1", PaymentMethod: entity.PaymentCash, Status: entity.SaleStatusCompleted,
		TotalAmount: decimal.NewFromInt(60), CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repos.Sales.CreateItem(ctx, &entity.SaleItem{
		ID: "i1", SaleID: "s1", ProductID: "vendido", Quantity: 6,
		Price: decimal.NewFromInt(10), Discount: decimal.Zero, CreatedAt: now,
	}))

	uc := inventory.NewReplenishmentUseCase(repos.Products, store.Dashboard())
	out, err := uc.Suggestions(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, "vendido", first.ProductID)
	assert.Equal(t, 1, first.Priority)
	assert.Equal(t, 6, first.IdealStock) // ceil(4 * 1.5)
	assert.Equal(t, 4, first.SuggestedOrderQty)
	assert.Equal(t, 6, first.UnitsSoldLast90Days)
	// (60 - 6*2) / 60 = 80%
	assert.Equal(t, "80", first.GrossMarginPct.String())
	assert.Equal(t, "8", first.EstimatedOrderCost.String())

	second := out[1]
	assert.Equal(t, "lista", second.ProductID)
	assert.Equal(t, 8, second.IdealStock) // ceil(5 * 1.5)
	assert.Equal(t, 7, second.SuggestedOrderQty)
	assert.Equal(t, "33.33", second.GrossMarginPct.String())
	assert.Equal(t, 2, second.Priority)
}
