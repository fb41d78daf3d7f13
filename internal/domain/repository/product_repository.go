package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
)

// ProductFilter criterios de búsqueda de productos.
type ProductFilter struct {
	Query       string   // texto libre sobre nombre, SKU y código de barras (sin acentos)
	CategoryIDs []string // vacío = todas
	SupplierID  string
	Limit       int
	Offset      int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id string, quantity int, updatedAt time.Time) error
	UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// ListLowStock productos con quantity < min_quantity, menor stock primero.
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}
