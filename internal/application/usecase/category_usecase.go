package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/category"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
	"github.com/jhoicas/estoque-inteligente/pkg/textnorm"
)

// CategoryUseCase mantiene el bosque de categorías: alta, edición sin ciclos,
// borrado estricto y consultas de subárbol.
type CategoryUseCase struct {
	tx    inventory.TxRunner
	repos repository.Repositories
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(tx inventory.TxRunner, repos repository.Repositories) *CategoryUseCase {
	return &CategoryUseCase{tx: tx, repos: repos}
}

// Create falla con ErrParentNotFound si ParentID no existe.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		ParentID:    strings.TrimSpace(in.ParentID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if err := checkParentExists(ctx, repos, c.ParentID); err != nil {
			return err
		}
		if err := checkSiblingName(ctx, repos, c); err != nil {
			return err
		}
		return repos.Categories.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewCategoryResponse(c)
	return &out, nil
}

// Get devuelve ErrNotFound si no existe.
func (uc *CategoryUseCase) Get(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.mustGet(ctx, uc.repos, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewCategoryResponse(c)
	return &out, nil
}

// List todas las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	all, err := uc.repos.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewCategoryList(all), nil
}

// Tree devuelve el bosque anidado con profundidad.
func (uc *CategoryUseCase) Tree(ctx context.Context) ([]dto.CategoryTreeNode, error) {
	all, err := uc.repos.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return toTreeNodes(category.BuildTree(all)), nil
}

// Update re-parentar valida existencia del padre y ausencia de ciclo.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	var updated *entity.Category
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		c, err := uc.mustGet(ctx, repos, id)
		if err != nil {
			return err
		}
		renamed := false
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.NewValidationError("name", "no puede quedar vacío")
			}
			renamed = name != c.Name
			c.Name = name
		}
		if in.Description != nil {
			c.Description = strings.TrimSpace(*in.Description)
		}
		moved := false
		if in.ParentID != nil {
			newParent := strings.TrimSpace(*in.ParentID)
			if newParent != c.ParentID {
				if err := checkParentExists(ctx, repos, newParent); err != nil {
					return err
				}
				if err := repos.Categories.LockTree(ctx); err != nil {
					return err
				}
				all, err := repos.Categories.List(ctx)
				if err != nil {
					return err
				}
				if category.WouldCreateCycle(c.ID, newParent, category.LookupFromList(all), len(all)) {
					return fmt.Errorf("%s bajo %s: %w", c.ID, newParent, domain.ErrCyclicParent)
				}
				c.ParentID = newParent
				moved = true
			}
		}
		if renamed || moved {
			if err := checkSiblingName(ctx, repos, c); err != nil {
				return err
			}
		}
		c.UpdatedAt = time.Now()
		updated = c
		return repos.Categories.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewCategoryResponse(updated)
	return &out, nil
}

// Delete estricto: rechaza con ErrHasDependents si tiene subcategorías o productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if _, err := uc.mustGet(ctx, repos, id); err != nil {
			return err
		}
		children, err := repos.Categories.CountChildren(ctx, id)
		if err != nil {
			return err
		}
		products, err := repos.Products.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if children > 0 || products > 0 {
			return fmt.Errorf("%w (%d subcategorías, %d productos)", domain.ErrHasDependents, children, products)
		}
		return repos.Categories.Delete(ctx, id)
	})
}

// Subcategories hijos directos.
func (uc *CategoryUseCase) Subcategories(ctx context.Context, id string) ([]dto.CategoryResponse, error) {
	if _, err := uc.mustGet(ctx, uc.repos, id); err != nil {
		return nil, err
	}
	children, err := uc.repos.Categories.ListByParent(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCategoryList(children), nil
}

// Descendants clausura transitiva de hijos (sin incluir id).
func (uc *CategoryUseCase) Descendants(ctx context.Context, id string) ([]dto.CategoryResponse, error) {
	if _, err := uc.mustGet(ctx, uc.repos, id); err != nil {
		return nil, err
	}
	all, err := uc.repos.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewCategoryList(category.Descendants(all, id)), nil
}

// Path ruta raíz -> id (breadcrumb).
func (uc *CategoryUseCase) Path(ctx context.Context, id string) ([]dto.CategoryResponse, error) {
	if _, err := uc.mustGet(ctx, uc.repos, id); err != nil {
		return nil, err
	}
	all, err := uc.repos.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewCategoryList(category.Path(all, id)), nil
}

// SubtreeIDs id y todos sus descendientes; usado por el filtro de productos.
func (uc *CategoryUseCase) SubtreeIDs(ctx context.Context, id string) ([]string, error) {
	all, err := uc.repos.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return category.DescendantIDs(all, id, true), nil
}

func (uc *CategoryUseCase) mustGet(ctx context.Context, repos repository.Repositories, id string) (*entity.Category, error) {
	c, err := repos.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("categoría %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

func checkParentExists(ctx context.Context, repos repository.Repositories, parentID string) error {
	if parentID == "" {
		return nil
	}
	parent, err := repos.Categories.GetByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("%s: %w", parentID, domain.ErrParentNotFound)
	}
	return nil
}

// checkSiblingName dos hermanas no pueden llamarse igual (sin distinguir acentos ni mayúsculas).
func checkSiblingName(ctx context.Context, repos repository.Repositories, c *entity.Category) error {
	siblings, err := repos.Categories.ListByParent(ctx, c.ParentID)
	if err != nil {
		return err
	}
	for _, s := range siblings {
		if s.ID != c.ID && textnorm.Equal(s.Name, c.Name) {
			return fmt.Errorf("categoría %q: %w", c.Name, domain.ErrDuplicate)
		}
	}
	return nil
}

func toTreeNodes(nodes []*category.Node) []dto.CategoryTreeNode {
	out := make([]dto.CategoryTreeNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.CategoryTreeNode{
			CategoryResponse: dto.NewCategoryResponse(n.Category),
			Depth:            n.Depth,
			Children:         toTreeNodes(n.Children),
		})
	}
	return out
}
