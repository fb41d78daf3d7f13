package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y líneas en memoria.
type SaleRepo struct {
	v view
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	return r.v.read(func(st *state) error {
		if _, ok := st.sales[s.ID]; ok {
			return domain.ErrDuplicate
		}
		st.sales[s.ID] = *s
		return nil
	})
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.read(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	return r.v.read(func(st *state) error {
		if _, ok := st.sales[s.ID]; !ok {
			return domain.ErrNotFound
		}
		st.sales[s.ID] = *s
		return nil
	})
}

// Delete borra la cabecera y sus líneas (como ON DELETE CASCADE).
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	return r.v.read(func(st *state) error {
		if _, ok := st.sales[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.sales, id)
		removeItems(st, func(it entity.SaleItem) bool { return it.SaleID == id })
		return nil
	})
}

// List más recientes primero; From/To inclusivos.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	list := make([]*entity.Sale, 0)
	err := r.v.read(func(st *state) error {
		for _, s := range st.sales {
			s := s
			if f.From != nil && s.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && s.CreatedAt.After(*f.To) {
				continue
			}
			list = append(list, &s)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return page(list, f.Limit, f.Offset), err
}

// CreateItem exige que la venta exista (clave foránea).
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	return r.v.read(func(st *state) error {
		if _, ok := st.sales[it.SaleID]; !ok {
			return domain.ErrNotFound
		}
		st.saleItems = append(st.saleItems, *it)
		return nil
	})
}

func (r *SaleRepo) GetItem(ctx context.Context, id string) (*entity.SaleItem, error) {
	var out *entity.SaleItem
	err := r.v.read(func(st *state) error {
		for _, it := range st.saleItems {
			if it.ID == id {
				it := it
				out = &it
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) DeleteItem(ctx context.Context, id string) error {
	return r.v.read(func(st *state) error {
		if removeItems(st, func(it entity.SaleItem) bool { return it.ID == id }) == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *SaleRepo) DeleteItemsBySale(ctx context.Context, saleID string) (int, error) {
	var n int
	err := r.v.read(func(st *state) error {
		n = removeItems(st, func(it entity.SaleItem) bool { return it.SaleID == saleID })
		return nil
	})
	return n, err
}

// ListItems en orden de creación.
func (r *SaleRepo) ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	list := make([]*entity.SaleItem, 0)
	err := r.v.read(func(st *state) error {
		for _, it := range st.saleItems {
			if it.SaleID == saleID {
				it := it
				list = append(list, &it)
			}
		}
		return nil
	})
	return list, err
}

func removeItems(st *state, drop func(entity.SaleItem) bool) int {
	kept := make([]entity.SaleItem, 0, len(st.saleItems))
	for _, it := range st.saleItems {
		if !drop(it) {
			kept = append(kept, it)
		}
	}
	removed := len(st.saleItems) - len(kept)
	st.saleItems = kept
	return removed
}
