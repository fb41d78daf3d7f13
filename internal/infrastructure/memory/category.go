package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	v view
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return r.v.read(func(st *state) error {
		if _, ok := st.categories[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.read(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return r.v.read(func(st *state) error {
		if _, ok := st.categories[c.ID]; !ok {
			return domain.ErrNotFound
		}
		st.categories[c.ID] = *c
		return nil
	})
}

// Delete replica la restricción de clave foránea: no borra si hay hijos o productos.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.v.read(func(st *state) error {
		if _, ok := st.categories[id]; !ok {
			return domain.ErrNotFound
		}
		for _, c := range st.categories {
			if c.ParentID == id {
				return domain.ErrHasDependents
			}
		}
		for _, p := range st.products {
			if p.CategoryID == id {
				return domain.ErrHasDependents
			}
		}
		delete(st.categories, id)
		return nil
	})
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	return r.filter(func(*entity.Category) bool { return true })
}

// ListByParent con parentID vacío devuelve las raíces.
func (r *CategoryRepo) ListByParent(ctx context.Context, parentID string) ([]*entity.Category, error) {
	return r.filter(func(c *entity.Category) bool { return c.ParentID == parentID })
}

func (r *CategoryRepo) CountChildren(ctx context.Context, id string) (int, error) {
	children, err := r.filter(func(c *entity.Category) bool { return c.ParentID == id })
	return len(children), err
}

// LockTree no hace nada: Store.Run ya serializa las transacciones.
func (r *CategoryRepo) LockTree(ctx context.Context) error {
	return nil
}

func (r *CategoryRepo) filter(keep func(*entity.Category) bool) ([]*entity.Category, error) {
	list := make([]*entity.Category, 0)
	err := r.v.read(func(st *state) error {
		for _, c := range st.categories {
			c := c
			if keep(&c) {
				list = append(list, &c)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name == list[j].Name {
			return list[i].ID < list[j].ID
		}
		return list[i].Name < list[j].Name
	})
	return list, err
}
