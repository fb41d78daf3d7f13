package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario con su stock disponible.
// Quantity se modifica por edición directa, ajuste (delta) o consumo de una venta.
type Product struct {
	ID          string
	Name        string
	SKU         string // código único por tienda
	Barcode     string
	Description string
	CategoryID  string // vacío = sin categoría
	SupplierID  string // vacío = sin proveedor
	CostPrice   decimal.Decimal
	SellPrice   decimal.Decimal
	Quantity    int
	MinQuantity int // punto de reposición
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
