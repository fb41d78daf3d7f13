package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago.
const (
	PaymentCash   = "cash"
	PaymentDebit  = "debit"
	PaymentCredit = "credit"
	PaymentPix    = "pix"
)

// Estados de venta. No existe transición a cancelada/devuelta en el servidor.
const (
	SaleStatusCompleted = "completed"
	SaleStatusPending   = "pending"
)

// MaxInstallments cuotas máximas para pagos a crédito.
const MaxInstallments = 12

// Sale cabecera de una venta.
type Sale struct {
	ID               string
	CustomerName     string
	CustomerDocument string
	TotalAmount      decimal.Decimal
	PaymentMethod    string
	Installments     int    // solo crédito
	CardBrand        string // solo débito/crédito
	Status           string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SaleItem línea de una venta; al crearse descuenta el stock del producto.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	Price     decimal.Decimal // precio unitario
	Discount  decimal.Decimal // descuento total de la línea
	CreatedAt time.Time
}

// LineTotal = Quantity * Price - Discount.
func (i *SaleItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount)
}

// ValidPaymentMethod informa si m es un medio de pago soportado.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentDebit, PaymentCredit, PaymentPix:
		return true
	}
	return false
}

// ValidSaleStatus informa si s es un estado de venta soportado.
func ValidSaleStatus(s string) bool {
	return s == SaleStatusCompleted || s == SaleStatusPending
}
