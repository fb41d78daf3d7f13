package inventory

import (
	"fmt"

	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
)

// AlertPolicy define cuándo un producto bajo el mínimo genera una alerta.
type AlertPolicy string

const (
	// PolicyAccumulate emite una alerta en cada mutación que deja el stock bajo el mínimo.
	PolicyAccumulate AlertPolicy = "accumulate"
	// PolicyTransition emite una sola alerta por período bajo el mínimo
	// (al pasar de "normal" a "bajo"); reponer stock abre un nuevo período.
	PolicyTransition AlertPolicy = "transition"
)

// ParseAlertPolicy convierte el valor de configuración; vacío = PolicyAccumulate.
func ParseAlertPolicy(s string) (AlertPolicy, error) {
	switch AlertPolicy(s) {
	case "", PolicyAccumulate:
		return PolicyAccumulate, nil
	case PolicyTransition:
		return PolicyTransition, nil
	}
	return "", fmt.Errorf("política de alertas desconocida: %q", s)
}

// IsLowStock condición de stock bajo: cantidad estrictamente menor al mínimo.
func IsLowStock(quantity, minQuantity int) bool {
	return quantity < minQuantity
}

// ShouldEmit decide si una mutación con resultado isLow debe generar alerta.
func ShouldEmit(policy AlertPolicy, wasLow, isLow bool) bool {
	if !isLow {
		return false
	}
	if policy == PolicyTransition {
		return !wasLow
	}
	return true
}

// AlertTypeFor devuelve out_of_stock si no queda stock, low_stock en otro caso.
func AlertTypeFor(quantity int) string {
	if quantity <= 0 {
		return entity.AlertTypeOutOfStock
	}
	return entity.AlertTypeLowStock
}

// LowStockMessage mensaje de la alerta con nombre, cantidad restante y mínimo.
func LowStockMessage(productName string, quantity, minQuantity int) string {
	if quantity <= 0 {
		return fmt.Sprintf("Producto sin stock: %s (quedan %d, mínimo %d)", productName, quantity, minQuantity)
	}
	return fmt.Sprintf("Stock bajo: %s (quedan %d, mínimo %d)", productName, quantity, minQuantity)
}
