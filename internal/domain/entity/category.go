package entity

import "time"

// Category representa una categoría de productos (jerárquica opcional).
// El grafo ParentID debe ser acíclico: una categoría nunca es su propio ancestro.
type Category struct {
	ID          string
	Name        string
	Description string
	ParentID    string // vacío si es raíz
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}
