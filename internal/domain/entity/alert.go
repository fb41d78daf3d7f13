package entity

import "time"

// Tipos de alerta.
const (
	AlertTypeLowStock   = "low_stock"
	AlertTypeOutOfStock = "out_of_stock"
	AlertTypeSystem     = "system"
)

// Alert es una notificación generada por el sistema (principalmente stock bajo).
// Solo cambia al marcarse como leída; nunca se elimina en el flujo normal.
type Alert struct {
	ID        string
	Type      string
	Message   string
	ProductID string // vacío si no referencia un producto
	Read      bool
	CreatedAt time.Time
}

// ValidAlertType informa si t es un tipo de alerta conocido.
func ValidAlertType(t string) bool {
	switch t {
	case AlertTypeLowStock, AlertTypeOutOfStock, AlertTypeSystem:
		return true
	}
	return false
}
