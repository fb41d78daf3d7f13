package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el dashboard.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador de consultas agregadas.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CatalogCounts totales del catálogo en una sola consulta.
func (r *DashboardRepo) CatalogCounts(ctx context.Context) (repository.CatalogCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products)                                  AS products,
	    (SELECT COUNT(*) FROM categories)                                AS categories,
	    (SELECT COUNT(*) FROM suppliers)                                 AS suppliers,
	    (SELECT COUNT(*) FROM products WHERE quantity < min_quantity)   AS low_stock,
	    (SELECT COUNT(*) FROM products WHERE quantity <= 0)             AS out_of_stock,
	    (SELECT COUNT(*) FROM alerts   WHERE NOT read)                  AS unread_alerts`

	var c repository.CatalogCounts
	err := r.q.QueryRow(ctx, query).Scan(&c.Products, &c.Categories, &c.Suppliers, &c.LowStock, &c.OutOfStock, &c.UnreadAlerts)
	if err != nil {
		return c, fmt.Errorf("dashboard.CatalogCounts: %w", err)
	}
	return c, nil
}

// InventoryValue valoriza el stock positivo a costo y a precio de venta.
func (r *DashboardRepo) InventoryValue(ctx context.Context) (repository.InventoryValue, error) {
	const query = `
	SELECT
	    COALESCE(SUM(quantity), 0)              AS units,
	    COALESCE(SUM(quantity * cost_price), 0) AS cost,
	    COALESCE(SUM(quantity * sell_price), 0) AS retail
	FROM products
	WHERE quantity > 0`

	var v repository.InventoryValue
	if err := r.q.QueryRow(ctx, query).Scan(&v.Units, &v.Cost, &v.Retail); err != nil {
		return v, fmt.Errorf("dashboard.InventoryValue: %w", err)
	}
	return v, nil
}

// SalesTotals cantidad e ingresos de las ventas del período (ambos extremos inclusive).
func (r *DashboardRepo) SalesTotals(ctx context.Context, from, to time.Time) (repository.SalesTotals, error) {
	const query = `
	SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
	FROM sales
	WHERE created_at BETWEEN $1 AND $2`

	var t repository.SalesTotals
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&t.Count, &t.Revenue); err != nil {
		return t, fmt.Errorf("dashboard.SalesTotals: %w", err)
	}
	return t, nil
}

// TopProducts los `limit` productos con más unidades vendidas en el período.
// Un producto borrado sigue apareciendo, sin SKU ni nombre.
func (r *DashboardRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProduct, error) {
	const query = `
	SELECT
	    si.product_id,
	    COALESCE(p.sku,  '')                              AS sku,
	    COALESCE(p.name, '')                              AS name,
	    SUM(si.quantity)                                  AS quantity_sold,
	    COALESCE(SUM(si.quantity * si.price - si.discount), 0) AS revenue
	FROM sale_items si
	JOIN sales s          ON s.id = si.sale_id
	LEFT JOIN products p  ON p.id = si.product_id
	WHERE s.created_at BETWEEN $1 AND $2
	GROUP BY si.product_id, p.sku, p.name
	ORDER BY quantity_sold DESC, revenue DESC, si.product_id
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, from, to, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("dashboard.TopProducts: %w", err)
	}
	defer rows.Close()

	out := make([]repository.TopProduct, 0)
	for rows.Next() {
		var tp repository.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.SKU, &tp.Name, &tp.QuantitySold, &tp.Revenue); err != nil {
			return nil, fmt.Errorf("dashboard.TopProducts scan: %w", err)
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}
