package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/application/usecase"
	"github.com/jhoicas/estoque-inteligente/internal/infrastructure/memory"
)

type env struct {
	ctx        context.Context
	store      *memory.Store
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	alerts     *usecase.AlertUseCase
}

func newEnv(t *testing.T, opts inventory.Options) *env {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	ledger := inventory.NewStockLedger(store, opts)
	return &env{
		ctx:        context.Background(),
		store:      store,
		categories: usecase.NewCategoryUseCase(store, repos),
		products:   usecase.NewProductUseCase(store, repos, ledger),
		alerts:     usecase.NewAlertUseCase(repos.Alerts, repos.Products),
	}
}

func (e *env) category(t *testing.T, name, parentID string) string {
	t.Helper()
	c, err := e.categories.Create(e.ctx, dto.CreateCategoryRequest{Name: name, ParentID: parentID})
	require.NoError(t, err)
	return c.ID
}

func (e *env) product(t *testing.T, sku string, qty, min int) *dto.ProductResponse {
	t.Helper()
	p, err := e.products.Create(e.ctx, dto.CreateProductRequest{
		Name:        "Produto " + sku,
		SKU:         sku,
		CostPrice:   decimal.NewFromInt(5),
		SellPrice:   decimal.NewFromInt(8),
		Quantity:    qty,
		MinQuantity: min,
	})
	require.NoError(t, err)
	return p
}

// alertsFor alertas (leídas o no) que referencian al producto.
func (e *env) alertsFor(t *testing.T, productID string) int {
	t.Helper()
	list, err := e.store.Repositories().Alerts.ListByProduct(e.ctx, productID)
	require.NoError(t, err)
	return len(list)
}

func ptr[T any](v T) *T { return &v }
