package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
	"github.com/jhoicas/estoque-inteligente/pkg/textnorm"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. El SKU es único (sin distinguir mayúsculas).
type ProductRepo struct {
	v view
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.v.read(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		if skuTaken(st, p.SKU, "") {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		for _, p := range st.products {
			if strings.EqualFold(p.SKU, sku) {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: Run ya serializa las transacciones.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.v.read(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		if skuTaken(st, p.SKU, p.ID) {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int, updatedAt time.Time) error {
	return r.v.read(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Quantity = quantity
		p.UpdatedAt = updatedAt
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	return r.v.read(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.CostPrice = cost
		st.products[id] = p
		return nil
	})
}

// Delete borra el producto, su historial de movimientos y desvincula sus alertas.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.v.read(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.products, id)
		kept := st.movements[:0]
		for _, m := range st.movements {
			if m.ProductID != id {
				kept = append(kept, m)
			}
		}
		st.movements = kept
		for i := range st.alerts {
			if st.alerts[i].ProductID == id {
				st.alerts[i].ProductID = ""
			}
		}
		return nil
	})
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query := textnorm.Fold(f.Query)
	var cats map[string]bool
	if len(f.CategoryIDs) > 0 {
		cats = make(map[string]bool, len(f.CategoryIDs))
		for _, id := range f.CategoryIDs {
			cats[id] = true
		}
	}
	list, err := r.filter(func(p *entity.Product) bool {
		if cats != nil && !cats[p.CategoryID] {
			return false
		}
		if f.SupplierID != "" && p.SupplierID != f.SupplierID {
			return false
		}
		if query != "" && !strings.Contains(textnorm.SearchText(p.Name, p.SKU, p.Barcode), query) {
			return false
		}
		return true
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name == list[j].Name {
			return list[i].ID < list[j].ID
		}
		return list[i].Name < list[j].Name
	})
	return page(list, f.Limit, f.Offset), err
}

func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	list, err := r.filter(func(p *entity.Product) bool { return p.Quantity < p.MinQuantity })
	sort.Slice(list, func(i, j int) bool {
		if list[i].Quantity == list[j].Quantity {
			return list[i].Name < list[j].Name
		}
		return list[i].Quantity < list[j].Quantity
	})
	return list, err
}

func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	list, err := r.filter(func(p *entity.Product) bool { return p.CategoryID == categoryID })
	return len(list), err
}

func (r *ProductRepo) filter(keep func(*entity.Product) bool) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0)
	err := r.v.read(func(st *state) error {
		for _, p := range st.products {
			p := p
			if keep(&p) {
				list = append(list, &p)
			}
		}
		return nil
	})
	return list, err
}

func skuTaken(st *state, sku, exceptID string) bool {
	for _, p := range st.products {
		if p.ID != exceptID && strings.EqualFold(p.SKU, sku) {
			return true
		}
	}
	return false
}
