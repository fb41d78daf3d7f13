package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
	"github.com/jhoicas/estoque-inteligente/pkg/brdoc"
)

// CompanyUseCase perfil único de la empresa.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Get devuelve ErrNotFound mientras no se haya configurado.
func (uc *CompanyUseCase) Get(ctx context.Context) (*dto.CompanyResponse, error) {
	c, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("perfil de empresa: %w", domain.ErrNotFound)
	}
	out := dto.NewCompanyResponse(c)
	return &out, nil
}

// Save crea o reemplaza el perfil. CNPJ y CEP se guardan solo con dígitos.
func (uc *CompanyUseCase) Save(ctx context.Context, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	verr := &domain.ValidationError{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.Add("name", "es requerido")
	}
	if strings.TrimSpace(in.CNPJ) != "" {
		if err := brdoc.ValidateCNPJ(in.CNPJ); err != nil {
			verr.Add("cnpj", "CNPJ inválido")
		}
	}
	if strings.TrimSpace(in.ZipCode) != "" {
		if err := brdoc.ValidateCEP(in.ZipCode); err != nil {
			verr.Add("zipCode", "CEP inválido (formato 00000-000)")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	existing, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Company{ID: uuid.NewString(), CreatedAt: now}
	if existing != nil {
		c.ID, c.CreatedAt = existing.ID, existing.CreatedAt
	}
	c.Name = name
	c.LegalName = strings.TrimSpace(in.LegalName)
	c.CNPJ = brdoc.OnlyDigits(in.CNPJ)
	c.StateRegistration = strings.TrimSpace(in.StateRegistration)
	c.Street = strings.TrimSpace(in.Street)
	c.Number = strings.TrimSpace(in.Number)
	c.Complement = strings.TrimSpace(in.Complement)
	c.District = strings.TrimSpace(in.District)
	c.City = strings.TrimSpace(in.City)
	c.State = strings.ToUpper(strings.TrimSpace(in.State))
	c.ZipCode = brdoc.OnlyDigits(in.ZipCode)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Mobile = strings.TrimSpace(in.Mobile)
	c.Email = strings.TrimSpace(in.Email)
	c.LogoURL = strings.TrimSpace(in.LogoURL)
	c.UpdatedAt = now

	if err := uc.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewCompanyResponse(c)
	return &out, nil
}
