package memory

import (
	"context"

	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo registro de alertas en memoria (solo agrega).
type AlertRepo struct {
	v view
}

func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	return r.v.read(func(st *state) error {
		st.alerts = append(st.alerts, *a)
		return nil
	})
}

func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	var out *entity.Alert
	err := r.v.read(func(st *state) error {
		for _, a := range st.alerts {
			if a.ID == id {
				a := a
				out = &a
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *AlertRepo) List(ctx context.Context, unreadOnly bool, limit int) ([]*entity.Alert, error) {
	list, err := r.newestFirst(ctx, func(a *entity.Alert) bool { return !unreadOnly || !a.Read })
	if err != nil {
		return nil, err
	}
	return page(list, limit, 0), nil
}

func (r *AlertRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Alert, error) {
	return r.newestFirst(ctx, func(a *entity.Alert) bool { return a.ProductID == productID })
}

// MarkRead es idempotente: una alerta ya leída no genera error.
func (r *AlertRepo) MarkRead(ctx context.Context, id string) error {
	return r.v.read(func(st *state) error {
		for i := range st.alerts {
			if st.alerts[i].ID == id {
				st.alerts[i].Read = true
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *AlertRepo) MarkAllRead(ctx context.Context) (int, error) {
	var n int
	err := r.v.read(func(st *state) error {
		for i := range st.alerts {
			if !st.alerts[i].Read {
				st.alerts[i].Read = true
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *AlertRepo) CountUnread(ctx context.Context) (int, error) {
	list, err := r.newestFirst(ctx, func(a *entity.Alert) bool { return !a.Read })
	return len(list), err
}

// newestFirst recorre el registro del final al principio; un contexto cancelado corta la lectura.
func (r *AlertRepo) newestFirst(ctx context.Context, keep func(*entity.Alert) bool) ([]*entity.Alert, error) {
	list := make([]*entity.Alert, 0)
	err := r.v.read(func(st *state) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := len(st.alerts) - 1; i >= 0; i-- {
			a := st.alerts[i]
			if keep(&a) {
				list = append(list, &a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
