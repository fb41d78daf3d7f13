package entity

import "time"

// Company perfil de la empresa (uno por instalación).
type Company struct {
	ID                string
	Name              string // nombre fantasía
	LegalName         string // razón social
	CNPJ              string // solo dígitos
	StateRegistration string
	Street            string
	Number            string
	Complement        string
	District          string
	City              string
	State             string
	ZipCode           string // CEP, solo dígitos
	Phone             string
	Mobile            string
	Email             string
	LogoURL           string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
