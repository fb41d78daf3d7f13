package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/application/sales"
	"github.com/jhoicas/estoque-inteligente/internal/application/usecase"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
)

func TestDashboard_Summary(t *testing.T) {
	e := newEnv(t, inventory.Options{})
	e.category(t, "Geral", "")
	a := e.product(t, "DSH-A", 10, 2) // costo 5, precio 8
	b := e.product(t, "DSH-B", 1, 3)

	rec := sales.NewRecorder(e.store, inventory.NewStockLedger(e.store, inventory.Options{}), e.store.Repositories())
	_, err := rec.CreateSale(e.ctx, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemInput{
			{ProductID: a.ID, Quantity: 4},
			{ProductID: b.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	uc := usecase.NewDashboardUseCase(e.store.Dashboard(), e.store.Repositories())
	got, err := uc.Summary(e.ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, got.TotalProducts)
	assert.Equal(t, 1, got.TotalCategories)
	assert.Equal(t, 1, got.LowStockCount)
	assert.Equal(t, 1, got.OutOfStockCount)
	assert.Equal(t, 6, got.InventoryUnits)
	assert.Equal(t, "30", got.InventoryCostValue.String())
	assert.Equal(t, 1, got.TodaySalesCount)
	assert.Equal(t, "40", got.TodayRevenue.String())
	assert.Equal(t, 1, got.MonthlySalesCount)

	require.Len(t, got.TopProducts, 2)
	assert.Equal(t, a.ID, got.TopProducts[0].ProductID)
	assert.Equal(t, 4, got.TopProducts[0].QuantitySold)

	require.Len(t, got.LowStockItems, 1)
	assert.Equal(t, b.ID, got.LowStockItems[0].ID)
	assert.NotEmpty(t, got.RecentAlerts)
}
