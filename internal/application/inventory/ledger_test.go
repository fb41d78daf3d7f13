package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-inteligente/internal/application/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	domaininv "github.com/jhoicas/estoque-inteligente/internal/domain/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
	"github.com/jhoicas/estoque-inteligente/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, store *memory.Store, id string, qty, min int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.Repositories().Products.Create(context.Background(), &entity.Product{
		ID: id, Name: "Produto " + id, SKU: "SKU-" + id,
		CostPrice: decimal.NewFromInt(2), SellPrice: decimal.NewFromInt(3),
		Quantity: qty, MinQuantity: min, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestNewStockLedger_PoliticaPorDefecto(t *testing.T) {
	l := inventory.NewStockLedger(memory.NewStore(), inventory.Options{})
	assert.Equal(t, domaininv.PolicyAccumulate, l.Policy())
}

func TestAdjustStock_RegistraMovimiento(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, 0)
	l := inventory.NewStockLedger(store, inventory.Options{})

	res, err := l.AdjustStock(ctx, "p1", -4, "quebra", nil)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Product.Quantity)
	assert.Nil(t, res.Alert)
	require.NotNil(t, res.Movement)
	assert.Equal(t, entity.MovementTypeAdjust, res.Movement.Type)
	assert.Equal(t, 10, res.Movement.Before)
	assert.Equal(t, 6, res.Movement.After)
	assert.Equal(t, -4, res.Movement.Delta)
	assert.Equal(t, "quebra", res.Movement.Reference)
}

func TestAdjustStock_CostoNegativo(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, 0)
	l := inventory.NewStockLedger(store, inventory.Options{})

	neg := decimal.NewFromInt(-1)
	_, err := l.AdjustStock(context.Background(), "p1", 5, "", &neg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustStock_SalidaNoCambiaCosto(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, 0)
	l := inventory.NewStockLedger(store, inventory.Options{})

	cost := decimal.NewFromInt(9)
	res, err := l.AdjustStock(context.Background(), "p1", -1, "", &cost)
	require.NoError(t, err)
	assert.True(t, res.Product.CostPrice.Equal(decimal.NewFromInt(2)))
}

// Si la transacción del llamador falla después del consumo, no queda ni el stock
// descontado ni la alerta.
func TestConsumeForSaleInTx_RollbackDelLlamador(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "p1", 3, 2)
	l := inventory.NewStockLedger(store, inventory.Options{})

	boom := errors.New("falla posterior")
	err := store.Run(ctx, func(repos repository.Repositories) error {
		res, err := l.ConsumeForSaleInTx(ctx, repos, "p1", 2, "venda-1")
		require.NoError(t, err)
		require.NotNil(t, res.Alert)
		return boom
	})
	require.ErrorIs(t, err, boom)

	repos := store.Repositories()
	p, err := repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Quantity)
	alerts, err := repos.Alerts.List(ctx, false, 0)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestConsumeForSaleInTx_CantidadInvalida(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "p1", 3, 0)
	l := inventory.NewStockLedger(store, inventory.Options{})

	err := store.Run(ctx, func(repos repository.Repositories) error {
		_, err := l.ConsumeForSaleInTx(ctx, repos, "p1", 0, "venda-1")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordEditedInTx_SinCambiosNoHaceNada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedProduct(t, store, "p1", 1, 5)
	l := inventory.NewStockLedger(store, inventory.Options{})

	err := store.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Products.GetByID(ctx, "p1")
		require.NoError(t, err)
		after := *p
		after.Name = "Outro nome"
		alert, err := l.RecordEditedInTx(ctx, repos, p, &after)
		assert.Nil(t, alert, "sigue bajo el mínimo pero sin cambio de stock no alerta")
		return err
	})
	require.NoError(t, err)

	movs, err := store.Repositories().Movements.ListByProduct(ctx, "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}
