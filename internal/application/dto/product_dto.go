package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	SKU         string          `json:"sku" validate:"required,min=1,max=64"`
	Barcode     string          `json:"barcode" validate:"max=64"`
	Description string          `json:"description"`
	CategoryID  string          `json:"categoryId"`
	SupplierID  string          `json:"supplierId"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	SellPrice   decimal.Decimal `json:"sellPrice"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	MinQuantity int             `json:"minQuantity" validate:"min=0"`
}

// UpdateProductRequest actualización parcial; solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU         *string          `json:"sku" validate:"omitempty,min=1,max=64"`
	Barcode     *string          `json:"barcode" validate:"omitempty,max=64"`
	Description *string          `json:"description"`
	CategoryID  *string          `json:"categoryId"`
	SupplierID  *string          `json:"supplierId"`
	CostPrice   *decimal.Decimal `json:"costPrice"`
	SellPrice   *decimal.Decimal `json:"sellPrice"`
	Quantity    *int             `json:"quantity" validate:"omitempty,min=0"`
	MinQuantity *int             `json:"minQuantity" validate:"omitempty,min=0"`
}

// ProductQuery filtros de GET /api/products.
type ProductQuery struct {
	Q                    string `query:"q"`
	CategoryID           string `query:"categoryId"`
	SupplierID           string `query:"supplierId"`
	IncludeSubcategories bool   `query:"includeSubcategories"`
	Limit                int    `query:"limit" validate:"min=0,max=500"`
	Offset               int    `query:"offset" validate:"min=0"`
}

// ProductResponse salida de un producto. LowStock = quantity < minQuantity.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Barcode     string          `json:"barcode"`
	Description string          `json:"description"`
	CategoryID  *string         `json:"categoryId"`
	SupplierID  *string         `json:"supplierId"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	SellPrice   decimal.Decimal `json:"sellPrice"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"minQuantity"`
	LowStock    bool            `json:"lowStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
