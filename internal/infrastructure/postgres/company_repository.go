package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo perfil único de la empresa (fila con singleton = true).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para la empresa.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Get devuelve (nil, nil) si aún no se configuró.
func (r *CompanyRepo) Get(ctx context.Context) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, `
		SELECT id, name, legal_name, cnpj, state_registration, street, number, complement, district,
			city, state, zip_code, phone, mobile, email, logo_url, created_at, updated_at
		FROM company WHERE singleton`).Scan(
		&c.ID, &c.Name, &c.LegalName, &c.CNPJ, &c.StateRegistration, &c.Street, &c.Number, &c.Complement,
		&c.District, &c.City, &c.State, &c.ZipCode, &c.Phone, &c.Mobile, &c.Email, &c.LogoURL,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Save inserta o reemplaza el perfil; el id y created_at originales se conservan.
func (r *CompanyRepo) Save(ctx context.Context, c *entity.Company) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO company (id, singleton, name, legal_name, cnpj, state_registration, street, number, complement,
			district, city, state, zip_code, phone, mobile, email, logo_url, created_at, updated_at)
		VALUES ($1, true, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (singleton) DO UPDATE SET
			name = EXCLUDED.name, legal_name = EXCLUDED.legal_name, cnpj = EXCLUDED.cnpj,
			state_registration = EXCLUDED.state_registration, street = EXCLUDED.street,
			number = EXCLUDED.number, complement = EXCLUDED.complement, district = EXCLUDED.district,
			city = EXCLUDED.city, state = EXCLUDED.state, zip_code = EXCLUDED.zip_code,
			phone = EXCLUDED.phone, mobile = EXCLUDED.mobile, email = EXCLUDED.email,
			logo_url = EXCLUDED.logo_url, updated_at = EXCLUDED.updated_at`,
		c.ID, c.Name, c.LegalName, c.CNPJ, c.StateRegistration, c.Street, c.Number, c.Complement,
		c.District, c.City, c.State, c.ZipCode, c.Phone, c.Mobile, c.Email, c.LogoURL,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save company: %w", err)
	}
	return nil
}
