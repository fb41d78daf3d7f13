package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemInput línea al crear una venta o agregarla después.
// Price vacío = precio de venta actual del producto.
type SaleItemInput struct {
	ProductID string           `json:"productId" validate:"required"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	Price     *decimal.Decimal `json:"price"`
	Discount  *decimal.Decimal `json:"discount"`
}

// CreateSaleRequest cabecera de venta con líneas opcionales (todo en una transacción).
// TotalAmount vacío = suma de las líneas.
type CreateSaleRequest struct {
	CustomerName     string           `json:"customerName" validate:"max=200"`
	CustomerDocument string           `json:"customerDocument"`
	TotalAmount      *decimal.Decimal `json:"totalAmount"`
	PaymentMethod    string           `json:"paymentMethod" validate:"required,oneof=cash debit credit pix"`
	Installments     int              `json:"installments" validate:"min=0,max=12"`
	CardBrand        string           `json:"cardBrand" validate:"max=40"`
	Status           string           `json:"status" validate:"omitempty,oneof=completed pending"`
	Notes            string           `json:"notes" validate:"max=1000"`
	Items            []SaleItemInput  `json:"items" validate:"dive"`
}

// UpdateSaleRequest actualización parcial de la cabecera; las líneas no se tocan.
type UpdateSaleRequest struct {
	CustomerName     *string          `json:"customerName" validate:"omitempty,max=200"`
	CustomerDocument *string          `json:"customerDocument"`
	TotalAmount      *decimal.Decimal `json:"totalAmount"`
	PaymentMethod    *string          `json:"paymentMethod" validate:"omitempty,oneof=cash debit credit pix"`
	Installments     *int             `json:"installments" validate:"omitempty,min=0,max=12"`
	CardBrand        *string          `json:"cardBrand" validate:"omitempty,max=40"`
	Status           *string          `json:"status" validate:"omitempty,oneof=completed pending"`
	Notes            *string          `json:"notes" validate:"omitempty,max=1000"`
}

// AddSaleItemRequest POST /api/sales/items.
type AddSaleItemRequest struct {
	SaleID string `json:"saleId" validate:"required"`
	SaleItemInput
}

// SaleQuery filtros de GET /api/sales (fechas YYYY-MM-DD, inclusivas).
type SaleQuery struct {
	From   string `query:"from"`
	To     string `query:"to"`
	Limit  int    `query:"limit" validate:"min=0,max=500"`
	Offset int    `query:"offset" validate:"min=0"`
}

// SaleResponse cabecera de venta; Items solo en el detalle y en la creación.
type SaleResponse struct {
	ID               string             `json:"id"`
	CustomerName     string             `json:"customerName"`
	CustomerDocument string             `json:"customerDocument"`
	TotalAmount      decimal.Decimal    `json:"totalAmount"`
	PaymentMethod    string             `json:"paymentMethod"`
	Installments     int                `json:"installments"`
	CardBrand        string             `json:"cardBrand"`
	Status           string             `json:"status"`
	Notes            string             `json:"notes"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
	Items            []SaleItemResponse `json:"items,omitempty"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	SaleID    string          `json:"saleId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// AddSaleItemResponse línea creada, producto resultante y alerta emitida (si hubo).
type AddSaleItemResponse struct {
	Item    SaleItemResponse `json:"item"`
	Product ProductResponse  `json:"product"`
	Alert   *AlertResponse   `json:"alert,omitempty"`
}
