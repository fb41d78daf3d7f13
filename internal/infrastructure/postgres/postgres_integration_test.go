package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/usecase"
	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
	"github.com/jhoicas/estoque-inteligente/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-inteligente/pkg/config"
)

// Requiere una base descartable: TEST_DATABASE_URL=postgres://...
func setup(t *testing.T) (repository.Repositories, *postgres.TxRunner) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido; se omiten pruebas de integración")
	}
	ctx := context.Background()

	m, err := postgres.NewMigrator(dsn)
	require.NoError(t, err)
	require.NoError(t, m.Down(0))
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return postgres.NewRepositories(pool), postgres.NewTxRunner(pool)
}

func TestPostgres_CategoriasYProductos(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	root := &entity.Category{ID: uuid.NewString(), Name: "Eletrônicos", CreatedAt: now, UpdatedAt: now}
	child := &entity.Category{ID: uuid.NewString(), Name: "Celulares", ParentID: root.ID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Categories.Create(ctx, root))
	require.NoError(t, repos.Categories.Create(ctx, child))

	orphan := &entity.Category{ID: uuid.NewString(), Name: "X", ParentID: "no-existe", CreatedAt: now, UpdatedAt: now}
	assert.ErrorIs(t, repos.Categories.Create(ctx, orphan), domain.ErrParentNotFound)

	assert.ErrorIs(t, repos.Categories.Delete(ctx, root.ID), domain.ErrHasDependents)

	roots, err := repos.Categories.ListByParent(ctx, "")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, root.ID, roots[0].ID)

	p := &entity.Product{
		ID: uuid.NewString(), Name: "Café Torrado", SKU: "CAF-001", CategoryID: child.ID,
		CostPrice: decimal.RequireFromString("12.50"), SellPrice: decimal.RequireFromString("19.90"),
		Quantity: 10, MinQuantity: 5, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repos.Products.Create(ctx, p))

	dup := *p
	dup.ID = uuid.NewString()
	dup.SKU = "caf-001"
	assert.ErrorIs(t, repos.Products.Create(ctx, &dup), domain.ErrDuplicate)

	found, err := repos.Products.List(ctx, repository.ProductFilter{Query: "CAFE"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].SellPrice.Equal(p.SellPrice))

	assert.ErrorIs(t, repos.Categories.Delete(ctx, child.ID), domain.ErrHasDependents, "producto referencia la categoría")
}

func TestPostgres_TxRollback(t *testing.T) {
	repos, tx := setup(t)
	ctx := context.Background()
	now := time.Now().UTC()

	p := &entity.Product{ID: uuid.NewString(), Name: "Arroz", SKU: "ARR-1", Quantity: 3, MinQuantity: 1, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Products.Create(ctx, p))

	boom := errors.New("abortar")
	err := tx.Run(ctx, func(r repository.Repositories) error {
		locked, err := r.Products.GetForUpdate(ctx, p.ID)
		require.NoError(t, err)
		require.NoError(t, r.Products.UpdateQuantity(ctx, locked.ID, 0, now))
		require.NoError(t, r.Alerts.Create(ctx, &entity.Alert{ID: uuid.NewString(), Type: entity.AlertTypeOutOfStock, Message: "x", ProductID: p.ID, CreatedAt: now}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repos.Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
	n, err := repos.Alerts.CountUnread(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostgres_CompanySingleton(t *testing.T) {
	repos, _ := setup(t)
	ctx := context.Background()
	now := time.Now().UTC()

	c, err := repos.Company.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, c)

	require.NoError(t, repos.Company.Save(ctx, &entity.Company{ID: uuid.NewString(), Name: "Loja A", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Company.Save(ctx, &entity.Company{ID: uuid.NewString(), Name: "Loja B", CreatedAt: now, UpdatedAt: now}))

	c, err = repos.Company.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Loja B", c.Name)
}

func TestPostgres_ReubicacionConcurrenteSinCiclos(t *testing.T) {
	repos, tx := setup(t)
	ctx := context.Background()
	uc := usecase.NewCategoryUseCase(tx, repos)

	for i := 0; i < 20; i++ {
		a, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "A-" + uuid.NewString()})
		require.NoError(t, err)
		b, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "B-" + uuid.NewString()})
		require.NoError(t, err)

		var (
			wg    sync.WaitGroup
			start = make(chan struct{})
			errs  = make([]error, 2)
		)
		move := func(slot int, id, parent string) {
			defer wg.Done()
			<-start
			_, errs[slot] = uc.Update(ctx, id, dto.UpdateCategoryRequest{ParentID: &parent})
		}
		wg.Add(2)
		go move(0, a.ID, b.ID)
		go move(1, b.ID, a.ID)
		close(start)
		wg.Wait()

		failed := 0
		for _, err := range errs {
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrCyclicParent)
				failed++
			}
		}
		assert.Equal(t, 1, failed, "exactamente una reubicación debe fallar")

		ga, err := repos.Categories.GetByID(ctx, a.ID)
		require.NoError(t, err)
		gb, err := repos.Categories.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.False(t, ga.ParentID == b.ID && gb.ParentID == a.ID, "A y B no pueden ser padre uno del otro")
	}
}
