package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	v view
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return r.v.read(func(st *state) error {
		if _, ok := st.suppliers[s.ID]; ok {
			return domain.ErrDuplicate
		}
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.v.read(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	return r.v.read(func(st *state) error {
		if _, ok := st.suppliers[s.ID]; !ok {
			return domain.ErrNotFound
		}
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	return r.v.read(func(st *state) error {
		if _, ok := st.suppliers[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.suppliers, id)
		for pid, p := range st.products {
			if p.SupplierID == id {
				p.SupplierID = ""
				st.products[pid] = p
			}
		}
		return nil
	})
}

func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	list := make([]*entity.Supplier, 0)
	err := r.v.read(func(st *state) error {
		for _, s := range st.suppliers {
			s := s
			list = append(list, &s)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name == list[j].Name {
			return list[i].ID < list[j].ID
		}
		return list[i].Name < list[j].Name
	})
	return page(list, limit, offset), err
}
