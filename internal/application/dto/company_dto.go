package dto

import "time"

// CompanyRequest perfil de la empresa (POST /api/company hace upsert).
type CompanyRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=200"`
	LegalName         string `json:"legalName" validate:"max=200"`
	CNPJ              string `json:"cnpj"`
	StateRegistration string `json:"stateRegistration" validate:"max=30"`
	Street            string `json:"street" validate:"max=200"`
	Number            string `json:"number" validate:"max=20"`
	Complement        string `json:"complement" validate:"max=100"`
	District          string `json:"district" validate:"max=100"`
	City              string `json:"city" validate:"max=100"`
	State             string `json:"state" validate:"omitempty,len=2,alpha"`
	ZipCode           string `json:"zipCode"`
	Phone             string `json:"phone" validate:"max=30"`
	Mobile            string `json:"mobile" validate:"max=30"`
	Email             string `json:"email" validate:"omitempty,email"`
	LogoURL           string `json:"logoUrl" validate:"omitempty,url"`
}

// CompanyResponse salida del perfil de empresa.
type CompanyResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	LegalName         string    `json:"legalName"`
	CNPJ              string    `json:"cnpj"`
	StateRegistration string    `json:"stateRegistration"`
	Street            string    `json:"street"`
	Number            string    `json:"number"`
	Complement        string    `json:"complement"`
	District          string    `json:"district"`
	City              string    `json:"city"`
	State             string    `json:"state"`
	ZipCode           string    `json:"zipCode"`
	Phone             string    `json:"phone"`
	Mobile            string    `json:"mobile"`
	Email             string    `json:"email"`
	LogoURL           string    `json:"logoUrl"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
