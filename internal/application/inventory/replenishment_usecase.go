package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
)

// ventana de ventas usada para priorizar.
const replenishmentWindowDays = 90

// ReplenishmentUseCase arma la lista de compra de los productos bajo el mínimo,
// priorizando por margen y volumen de ventas recientes.
type ReplenishmentUseCase struct {
	products  repository.ProductRepository
	dashboard repository.DashboardRepository
	now       func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(products repository.ProductRepository, dashboard repository.DashboardRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{products: products, dashboard: dashboard, now: time.Now}
}

// Suggestions devuelve un ítem por producto con quantity < minQuantity.
// Stock ideal = ceil(minQuantity * 1.5); pedido sugerido = ideal - actual.
func (uc *ReplenishmentUseCase) Suggestions(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	low, err := uc.products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	end := uc.now()
	start := end.AddDate(0, 0, -replenishmentWindowDays)
	sold, err := uc.dashboard.TopProducts(ctx, start, end, 0)
	if err != nil {
		return nil, err
	}
	soldByID := make(map[string]repository.TopProduct, len(sold))
	for _, s := range sold {
		soldByID[s.ProductID] = s
	}

	hundred := decimal.NewFromInt(100)
	out := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, p := range low {
		ideal := (p.MinQuantity*3 + 1) / 2
		suggested := ideal - p.Quantity
		if suggested < 0 {
			suggested = 0
		}

		var margin decimal.Decimal
		var units int
		if s, ok := soldByID[p.ID]; ok && s.Revenue.IsPositive() {
			// margen realizado contra el costo actual
			units = s.QuantitySold
			profit := s.Revenue.Sub(p.CostPrice.Mul(decimal.NewFromInt(int64(s.QuantitySold))))
			margin = profit.Div(s.Revenue).Mul(hundred).Round(2)
		} else if p.SellPrice.IsPositive() {
			// sin ventas: margen de lista
			margin = p.SellPrice.Sub(p.CostPrice).Div(p.SellPrice).Mul(hundred).Round(2)
		}

		out = append(out, dto.ReplenishmentSuggestionDTO{
			ProductID:           p.ID,
			SKU:                 p.SKU,
			ProductName:         p.Name,
			CurrentStock:        p.Quantity,
			MinQuantity:         p.MinQuantity,
			IdealStock:          ideal,
			SuggestedOrderQty:   suggested,
			UnitCost:            p.CostPrice,
			EstimatedOrderCost:  p.CostPrice.Mul(decimal.NewFromInt(int64(suggested))),
			GrossMarginPct:      margin,
			UnitsSoldLast90Days: units,
		})
	}

	// Mayor margen, luego mayor volumen, luego mayor déficit bajo el mínimo.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		if a.UnitsSoldLast90Days != b.UnitsSoldLast90Days {
			return a.UnitsSoldLast90Days > b.UnitsSoldLast90Days
		}
		return a.MinQuantity-a.CurrentStock > b.MinQuantity-b.CurrentStock
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
