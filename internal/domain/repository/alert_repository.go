package repository

import (
	"context"

	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
)

// AlertRepository define el puerto del registro de alertas (solo agrega y marca leídas).
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	// List devuelve las alertas más recientes primero; limit <= 0 = sin límite.
	List(ctx context.Context, unreadOnly bool, limit int) ([]*entity.Alert, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Alert, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int, error)
	CountUnread(ctx context.Context) (int, error)
}
