package dto

import "time"

// SupplierRequest entrada para crear o reemplazar un proveedor.
type SupplierRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Document string `json:"document"`
	Phone    string `json:"phone" validate:"max=30"`
	Email    string `json:"email" validate:"omitempty,email"`
	Address  string `json:"address" validate:"max=300"`
	Notes    string `json:"notes" validate:"max=1000"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
