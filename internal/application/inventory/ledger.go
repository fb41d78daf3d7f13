package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
	"github.com/jhoicas/estoque-inteligente/internal/infrastructure/metrics"
)

// Options reglas de stock configurables.
type Options struct {
	AllowNegative bool
	AlertPolicy   inventory.AlertPolicy
}

// Change un cambio de cantidad sobre un producto.
type Change struct {
	ProductID string
	Delta     int
	Type      string // entity.MovementType*
	Reference string
	UnitCost  *decimal.Decimal // solo entradas: recalcula el costo promedio
}

// Result estado del producto tras el cambio y, si corresponde, la alerta emitida.
type Result struct {
	Product  *entity.Product
	Movement *entity.StockMovement
	Alert    *entity.Alert
}

// StockLedger es el único camino que modifica cantidades: bloquea la fila, aplica el
// delta, registra el movimiento y evalúa la alerta de stock bajo en la misma transacción.
type StockLedger struct {
	tx   TxRunner
	opts Options
	now  func() time.Time
}

// NewStockLedger construye el libro de stock.
func NewStockLedger(tx TxRunner, opts Options) *StockLedger {
	if opts.AlertPolicy == "" {
		opts.AlertPolicy = inventory.PolicyAccumulate
	}
	return &StockLedger{tx: tx, opts: opts, now: time.Now}
}

// Policy política de alertas vigente.
func (l *StockLedger) Policy() inventory.AlertPolicy {
	return l.opts.AlertPolicy
}

// AdjustStock aplica quantity += delta en su propia transacción.
func (l *StockLedger) AdjustStock(ctx context.Context, productID string, delta int, reason string, unitCost *decimal.Decimal) (*Result, error) {
	if delta == 0 {
		return nil, domain.NewValidationError("delta", "debe ser distinto de cero")
	}
	if unitCost != nil && unitCost.IsNegative() {
		return nil, domain.NewValidationError("unitCost", "no puede ser negativo")
	}
	var res *Result
	err := l.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		res, err = l.ApplyInTx(ctx, repos, Change{
			ProductID: productID,
			Delta:     delta,
			Type:      entity.MovementTypeAdjust,
			Reference: reason,
			UnitCost:  unitCost,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ConsumeForSaleInTx descuenta quantity unidades por una línea de venta, dentro de la tx del llamador.
func (l *StockLedger) ConsumeForSaleInTx(ctx context.Context, repos repository.Repositories, productID string, quantity int, saleID string) (*Result, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	return l.ApplyInTx(ctx, repos, Change{
		ProductID: productID,
		Delta:     -quantity,
		Type:      entity.MovementTypeSale,
		Reference: saleID,
	})
}

// ApplyInTx aplica un cambio usando los repositorios de la transacción en curso.
func (l *StockLedger) ApplyInTx(ctx context.Context, repos repository.Repositories, c Change) (*Result, error) {
	p, err := repos.Products.GetForUpdate(ctx, c.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %s: %w", c.ProductID, domain.ErrNotFound)
	}

	before := p.Quantity
	after := before + c.Delta
	if after < 0 && !l.opts.AllowNegative {
		return nil, fmt.Errorf("%w: %s tiene %d, se pidieron %d", domain.ErrInsufficientStock, p.SKU, before, -c.Delta)
	}

	now := l.now()
	if c.Delta > 0 && c.UnitCost != nil {
		cost := inventory.WeightedAverageCost(before, p.CostPrice, c.Delta, *c.UnitCost)
		if err := repos.Products.UpdateCost(ctx, p.ID, cost); err != nil {
			return nil, err
		}
		p.CostPrice = cost
	}
	if err := repos.Products.UpdateQuantity(ctx, p.ID, after, now); err != nil {
		return nil, err
	}
	p.Quantity = after
	p.UpdatedAt = now

	mov, err := l.recordMovement(ctx, repos, p.ID, c.Type, before, after, c.Reference, now)
	if err != nil {
		return nil, err
	}
	alert, err := l.evaluate(ctx, repos, p, inventory.IsLowStock(before, p.MinQuantity))
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("product_id", p.ID).
		Str("type", c.Type).
		Int("before", before).
		Int("after", after).
		Msg("stock actualizado")
	return &Result{Product: p, Movement: mov, Alert: alert}, nil
}

// RecordCreatedInTx registra el stock inicial de un producto recién creado y evalúa la alerta.
func (l *StockLedger) RecordCreatedInTx(ctx context.Context, repos repository.Repositories, p *entity.Product) (*entity.Alert, error) {
	if p.Quantity != 0 {
		if _, err := l.recordMovement(ctx, repos, p.ID, entity.MovementTypeInitial, 0, p.Quantity, "", p.CreatedAt); err != nil {
			return nil, err
		}
	}
	return l.evaluate(ctx, repos, p, false)
}

// RecordEditedInTx se llama tras una edición directa. Solo evalúa la alerta si cambió
// la cantidad o el mínimo; un cambio de cantidad queda en el historial como "edit".
func (l *StockLedger) RecordEditedInTx(ctx context.Context, repos repository.Repositories, before, after *entity.Product) (*entity.Alert, error) {
	if before.Quantity == after.Quantity && before.MinQuantity == after.MinQuantity {
		return nil, nil
	}
	if before.Quantity != after.Quantity {
		if after.Quantity < 0 && !l.opts.AllowNegative {
			return nil, domain.NewValidationError("quantity", "no puede ser negativa")
		}
		if _, err := l.recordMovement(ctx, repos, after.ID, entity.MovementTypeEdit, before.Quantity, after.Quantity, "", after.UpdatedAt); err != nil {
			return nil, err
		}
	}
	return l.evaluate(ctx, repos, after, inventory.IsLowStock(before.Quantity, before.MinQuantity))
}

func (l *StockLedger) recordMovement(ctx context.Context, repos repository.Repositories, productID, typ string, before, after int, ref string, at time.Time) (*entity.StockMovement, error) {
	mov := &entity.StockMovement{
		ID:        uuid.NewString(),
		ProductID: productID,
		Type:      typ,
		Delta:     after - before,
		Before:    before,
		After:     after,
		Reference: ref,
		CreatedAt: at,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	metrics.StockAdjustments.WithLabelValues(typ).Inc()
	return mov, nil
}

// evaluate emite la alerta de stock bajo según la política; wasLow es el estado previo.
func (l *StockLedger) evaluate(ctx context.Context, repos repository.Repositories, p *entity.Product, wasLow bool) (*entity.Alert, error) {
	isLow := inventory.IsLowStock(p.Quantity, p.MinQuantity)
	if !inventory.ShouldEmit(l.opts.AlertPolicy, wasLow, isLow) {
		return nil, nil
	}
	alert := &entity.Alert{
		ID:        uuid.NewString(),
		Type:      inventory.AlertTypeFor(p.Quantity),
		Message:   inventory.LowStockMessage(p.Name, p.Quantity, p.MinQuantity),
		ProductID: p.ID,
		CreatedAt: l.now(),
	}
	if err := repos.Alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	metrics.AlertsEmitted.WithLabelValues(alert.Type).Inc()
	log.Info().
		Str("product_id", p.ID).
		Str("alert_type", alert.Type).
		Int("quantity", p.Quantity).
		Int("min_quantity", p.MinQuantity).
		Msg("alerta de stock emitida")
	return alert, nil
}
