package repository

import (
	"context"

	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
)

// CompanyRepository persiste el perfil único de la empresa.
type CompanyRepository interface {
	// Get devuelve (nil, nil) si aún no se configuró.
	Get(ctx context.Context) (*entity.Company, error)
	// Save inserta o reemplaza el perfil.
	Save(ctx context.Context, company *entity.Company) error
}
