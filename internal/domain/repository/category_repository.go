package repository

import (
	"context"

	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID devuelve (nil, nil) si no existe.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	// List devuelve todas las categorías ordenadas por nombre.
	List(ctx context.Context) ([]*entity.Category, error)
	ListByParent(ctx context.Context, parentID string) ([]*entity.Category, error)
	CountChildren(ctx context.Context, id string) (int, error)
	// LockTree serializa los cambios de padre hasta el fin de la transacción en curso.
	LockTree(ctx context.Context) error
}
