package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CatalogCounts totales del catálogo para el dashboard.
type CatalogCounts struct {
	Products     int
	Categories   int
	Suppliers    int
	LowStock     int
	OutOfStock   int
	UnreadAlerts int
}

// InventoryValue valor del inventario a costo y a precio de venta.
type InventoryValue struct {
	Units  int
	Cost   decimal.Decimal
	Retail decimal.Decimal
}

// SalesTotals cantidad de ventas e ingresos de un período.
type SalesTotals struct {
	Count   int
	Revenue decimal.Decimal
}

// TopProduct producto más vendido en un período.
type TopProduct struct {
	ProductID    string
	SKU          string
	Name         string
	QuantitySold int
	Revenue      decimal.Decimal
}

// DashboardRepository consultas de solo lectura para el dashboard.
type DashboardRepository interface {
	CatalogCounts(ctx context.Context) (CatalogCounts, error)
	InventoryValue(ctx context.Context) (InventoryValue, error)
	SalesTotals(ctx context.Context, from, to time.Time) (SalesTotals, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
}
