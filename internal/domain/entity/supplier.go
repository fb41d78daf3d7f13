package entity

import "time"

// Supplier representa un proveedor. No tiene jerarquía; Product lo referencia opcionalmente.
type Supplier struct {
	ID        string
	Name      string
	Document  string // CNPJ/CPF, solo dígitos
	Phone     string
	Email     string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
