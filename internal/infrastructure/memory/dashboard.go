package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agrega sobre el estado en memoria.
type DashboardRepo struct {
	v view
}

func (r *DashboardRepo) CatalogCounts(ctx context.Context) (repository.CatalogCounts, error) {
	var out repository.CatalogCounts
	err := r.v.read(func(st *state) error {
		out.Products = len(st.products)
		out.Categories = len(st.categories)
		out.Suppliers = len(st.suppliers)
		for _, p := range st.products {
			if p.Quantity <= 0 {
				out.OutOfStock++
			}
			if p.Quantity < p.MinQuantity {
				out.LowStock++
			}
		}
		for _, a := range st.alerts {
			if !a.Read {
				out.UnreadAlerts++
			}
		}
		return nil
	})
	return out, err
}

func (r *DashboardRepo) InventoryValue(ctx context.Context) (repository.InventoryValue, error) {
	out := repository.InventoryValue{Cost: decimal.Zero, Retail: decimal.Zero}
	err := r.v.read(func(st *state) error {
		for _, p := range st.products {
			if p.Quantity <= 0 {
				continue
			}
			q := decimal.NewFromInt(int64(p.Quantity))
			out.Units += p.Quantity
			out.Cost = out.Cost.Add(p.CostPrice.Mul(q))
			out.Retail = out.Retail.Add(p.SellPrice.Mul(q))
		}
		return nil
	})
	return out, err
}

func (r *DashboardRepo) SalesTotals(ctx context.Context, from, to time.Time) (repository.SalesTotals, error) {
	out := repository.SalesTotals{Revenue: decimal.Zero}
	err := r.v.read(func(st *state) error {
		for _, s := range st.sales {
			if inRange(s.CreatedAt, from, to) {
				out.Count++
				out.Revenue = out.Revenue.Add(s.TotalAmount)
			}
		}
		return nil
	})
	return out, err
}

// TopProducts agrupa las líneas de las ventas del período por producto.
func (r *DashboardRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProduct, error) {
	byProduct := make(map[string]*repository.TopProduct)
	err := r.v.read(func(st *state) error {
		for _, it := range st.saleItems {
			sale, ok := st.sales[it.SaleID]
			if !ok || !inRange(sale.CreatedAt, from, to) {
				continue
			}
			tp, ok := byProduct[it.ProductID]
			if !ok {
				tp = &repository.TopProduct{ProductID: it.ProductID, Revenue: decimal.Zero}
				if p, found := st.products[it.ProductID]; found {
					tp.SKU, tp.Name = p.SKU, p.Name
				}
				byProduct[it.ProductID] = tp
			}
			tp.QuantitySold += it.Quantity
			tp.Revenue = tp.Revenue.Add(it.LineTotal())
		}
		return nil
	})
	out := make([]repository.TopProduct, 0, len(byProduct))
	for _, tp := range byProduct {
		out = append(out, *tp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QuantitySold != out[j].QuantitySold {
			return out[i].QuantitySold > out[j].QuantitySold
		}
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].ProductID < out[j].ProductID
	})
	return page(out, limit, 0), err
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
