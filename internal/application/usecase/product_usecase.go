package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/category"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

// movementsDefaultLimit filas de historial devueltas si no se pide otra cantidad.
const movementsDefaultLimit = 50

// ProductUseCase casos de uso de productos. Todo cambio de cantidad pasa por el StockLedger.
type ProductUseCase struct {
	tx     inventory.TxRunner
	repos  repository.Repositories
	ledger *inventory.StockLedger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx inventory.TxRunner, repos repository.Repositories, ledger *inventory.StockLedger) *ProductUseCase {
	return &ProductUseCase{tx: tx, repos: repos, ledger: ledger}
}

// Create valida, persiste y registra el stock inicial; si nace bajo el mínimo emite alerta.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		SKU:         strings.TrimSpace(in.SKU),
		Barcode:     strings.TrimSpace(in.Barcode),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  strings.TrimSpace(in.CategoryID),
		SupplierID:  strings.TrimSpace(in.SupplierID),
		CostPrice:   in.CostPrice.Round(2),
		SellPrice:   in.SellPrice.Round(2),
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if err := validateProduct(ctx, repos, p); err != nil {
			return err
		}
		if err := checkSKUFree(ctx, repos, p.SKU, ""); err != nil {
			return err
		}
		if err := repos.Products.Create(ctx, p); err != nil {
			return err
		}
		_, err := uc.ledger.RecordCreatedInTx(ctx, repos, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(p)
	return &out, nil
}

func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := mustGetProduct(ctx, uc.repos, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(p)
	return &out, nil
}

// GetBySKU búsqueda exacta para el punto de venta.
func (uc *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	p, err := uc.repos.Products.GetBySKU(ctx, strings.TrimSpace(sku))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("SKU %s: %w", sku, domain.ErrNotFound)
	}
	out := dto.NewProductResponse(p)
	return &out, nil
}

// List con IncludeSubcategories el filtro de categoría abarca todo el subárbol.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductQuery) ([]dto.ProductResponse, error) {
	filter := repository.ProductFilter{
		Query:      strings.TrimSpace(q.Q),
		SupplierID: q.SupplierID,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	if q.CategoryID != "" {
		filter.CategoryIDs = []string{q.CategoryID}
		if q.IncludeSubcategories {
			all, err := uc.repos.Categories.List(ctx)
			if err != nil {
				return nil, err
			}
			filter.CategoryIDs = category.DescendantIDs(all, q.CategoryID, true)
		}
	}
	list, err := uc.repos.Products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewProductList(list), nil
}

// LowStock productos con quantity < minQuantity, menor stock primero.
func (uc *ProductUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repos.Products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProductList(list), nil
}

// Update aplica solo los campos presentes. Si cambia la cantidad o el mínimo y el
// resultado queda bajo el mínimo, emite alerta según la política.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var updated *entity.Product
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		before, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if before == nil {
			return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		p := *before
		applyProductPatch(&p, in)
		p.UpdatedAt = time.Now()

		if err := validateProduct(ctx, repos, &p); err != nil {
			return err
		}
		if !strings.EqualFold(p.SKU, before.SKU) {
			if err := checkSKUFree(ctx, repos, p.SKU, p.ID); err != nil {
				return err
			}
		}
		if err := repos.Products.Update(ctx, &p); err != nil {
			return err
		}
		if _, err := uc.ledger.RecordEditedInTx(ctx, repos, before, &p); err != nil {
			return err
		}
		updated = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(updated)
	return &out, nil
}

// Delete incondicional: las líneas de venta pasadas conservan el productId.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repos.Products.Delete(ctx, id)
}

// AdjustStock POST /api/products/:id/stock.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, id string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	res, err := uc.ledger.AdjustStock(ctx, id, in.Delta, strings.TrimSpace(in.Reason), in.UnitCost)
	if err != nil {
		return nil, err
	}
	return &dto.AdjustStockResponse{
		Product: dto.NewProductResponse(res.Product),
		Alert:   dto.NewAlertPtr(res.Alert),
	}, nil
}

// Movements historial de cambios de cantidad, más recientes primero.
func (uc *ProductUseCase) Movements(ctx context.Context, id string, limit int) ([]dto.StockMovementResponse, error) {
	if _, err := mustGetProduct(ctx, uc.repos, id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = movementsDefaultLimit
	}
	list, err := uc.repos.Movements.ListByProduct(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewStockMovementResponse(m))
	}
	return out, nil
}

func applyProductPatch(p *entity.Product, in dto.UpdateProductRequest) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Barcode != nil {
		p.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.CategoryID != nil {
		p.CategoryID = strings.TrimSpace(*in.CategoryID)
	}
	if in.SupplierID != nil {
		p.SupplierID = strings.TrimSpace(*in.SupplierID)
	}
	if in.CostPrice != nil {
		p.CostPrice = in.CostPrice.Round(2)
	}
	if in.SellPrice != nil {
		p.SellPrice = in.SellPrice.Round(2)
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.MinQuantity != nil {
		p.MinQuantity = *in.MinQuantity
	}
}

// validateProduct acumula todos los errores de campo en un único ValidationError.
func validateProduct(ctx context.Context, repos repository.Repositories, p *entity.Product) error {
	verr := &domain.ValidationError{}
	if p.Name == "" {
		verr.Add("name", "es requerido")
	}
	if p.SKU == "" {
		verr.Add("sku", "es requerido")
	}
	if p.SellPrice.LessThan(decimal.Zero) {
		verr.Add("sellPrice", "no puede ser negativo")
	}
	if p.CostPrice.LessThan(decimal.Zero) {
		verr.Add("costPrice", "no puede ser negativo")
	}
	if p.Quantity < 0 {
		verr.Add("quantity", "no puede ser negativa")
	}
	if p.MinQuantity < 0 {
		verr.Add("minQuantity", "no puede ser negativo")
	}
	if p.CategoryID != "" {
		c, err := repos.Categories.GetByID(ctx, p.CategoryID)
		if err != nil {
			return err
		}
		if c == nil {
			verr.Add("categoryId", "la categoría no existe")
		}
	}
	if p.SupplierID != "" {
		s, err := repos.Suppliers.GetByID(ctx, p.SupplierID)
		if err != nil {
			return err
		}
		if s == nil {
			verr.Add("supplierId", "el proveedor no existe")
		}
	}
	return verr.OrNil()
}

func checkSKUFree(ctx context.Context, repos repository.Repositories, sku, exceptID string) error {
	existing, err := repos.Products.GetBySKU(ctx, sku)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != exceptID {
		return fmt.Errorf("SKU %s: %w", sku, domain.ErrDuplicate)
	}
	return nil
}

func mustGetProduct(ctx context.Context, repos repository.Repositories, id string) (*entity.Product, error) {
	p, err := repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}
