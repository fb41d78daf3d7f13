package repository

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
)

// SaleFilter rango de fechas (inclusive) y paginación para listar ventas.
type SaleFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)

	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetItem(ctx context.Context, id string) (*entity.SaleItem, error)
	DeleteItem(ctx context.Context, id string) error
	DeleteItemsBySale(ctx context.Context, saleID string) (int, error)
	ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
}
