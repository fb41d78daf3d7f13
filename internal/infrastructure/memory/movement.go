package memory

import (
	"context"

	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo historial de movimientos en memoria.
type MovementRepo struct {
	v view
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.v.read(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *MovementRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error) {
	list := make([]*entity.StockMovement, 0)
	err := r.v.read(func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			if m := st.movements[i]; m.ProductID == productID {
				list = append(list, &m)
			}
		}
		return nil
	})
	return page(list, limit, 0), err
}
