package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest POST /api/products/:id/stock. Delta puede ser negativo.
// UnitCost opcional en entradas: recalcula el costo promedio ponderado.
type AdjustStockRequest struct {
	Delta    int              `json:"delta" validate:"required"`
	Reason   string           `json:"reason" validate:"max=200"`
	UnitCost *decimal.Decimal `json:"unitCost"`
}

// AdjustStockResponse producto resultante y alerta emitida (si hubo).
type AdjustStockResponse struct {
	Product ProductResponse `json:"product"`
	Alert   *AlertResponse  `json:"alert,omitempty"`
}

// StockMovementResponse fila del historial de movimientos.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Type      string    `json:"type"`
	Delta     int       `json:"delta"`
	Before    int       `json:"before"`
	After     int       `json:"after"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReplenishmentSuggestionDTO sugerencia de compra para un producto bajo el mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID           string          `json:"productId"`
	SKU                 string          `json:"sku"`
	ProductName         string          `json:"productName"`
	CurrentStock        int             `json:"currentStock"`
	MinQuantity         int             `json:"minQuantity"`
	IdealStock          int             `json:"idealStock"`        // ceil(minQuantity * 1.5)
	SuggestedOrderQty   int             `json:"suggestedOrderQty"` // IdealStock - CurrentStock
	UnitCost            decimal.Decimal `json:"unitCost"`
	EstimatedOrderCost  decimal.Decimal `json:"estimatedOrderCost"`
	GrossMarginPct      decimal.Decimal `json:"grossMarginPct"`
	UnitsSoldLast90Days int             `json:"unitsSoldLast90Days"`
	Priority            int             `json:"priority"` // 1 = más urgente
}
