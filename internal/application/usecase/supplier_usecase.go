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

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now()
	s := &entity.Supplier{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := applySupplier(s, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	out := dto.NewSupplierResponse(s)
	return &out, nil
}

func (uc *SupplierUseCase) Get(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewSupplierResponse(s)
	return &out, nil
}

func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewSupplierResponse(s))
	}
	return out, nil
}

// Update reemplaza todos los campos editables.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applySupplier(s, in); err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := dto.NewSupplierResponse(s)
	return &out, nil
}

// Delete incondicional; los productos quedan sin proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *SupplierUseCase) mustGet(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("proveedor %s: %w", id, domain.ErrNotFound)
	}
	return s, nil
}

func applySupplier(s *entity.Supplier, in dto.SupplierRequest) error {
	verr := &domain.ValidationError{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.Add("name", "es requerido")
	}
	if strings.TrimSpace(in.Document) != "" {
		if err := brdoc.ValidateDocument(in.Document); err != nil {
			verr.Add("document", "CPF/CNPJ inválido")
		}
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	s.Name = name
	s.Document = brdoc.OnlyDigits(in.Document)
	s.Phone = strings.TrimSpace(in.Phone)
	s.Email = strings.TrimSpace(in.Email)
	s.Address = strings.TrimSpace(in.Address)
	s.Notes = strings.TrimSpace(in.Notes)
	return nil
}
