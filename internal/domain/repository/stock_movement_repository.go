package repository

import (
	"context"

	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
)

// StockMovementRepository define el puerto del historial de movimientos de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct más recientes primero.
	ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error)
}
