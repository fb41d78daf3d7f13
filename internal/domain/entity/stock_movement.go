package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeInitial = "initial" // stock inicial al crear el producto
	MovementTypeAdjust  = "adjust"  // ajuste por delta
	MovementTypeSale    = "sale"    // consumo por línea de venta
	MovementTypeEdit    = "edit"    // edición directa de la cantidad
)

// StockMovement registra cada cambio de cantidad de un producto.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	Delta     int
	Before    int
	After     int
	Reference string // venta, motivo del ajuste, etc.
	CreatedAt time.Time
}
