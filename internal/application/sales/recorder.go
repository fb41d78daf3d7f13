// Package sales registra ventas: cabecera, líneas y el consumo de stock de cada línea.
package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/repository"
	"github.com/jhoicas/estoque-inteligente/internal/infrastructure/metrics"
	"github.com/jhoicas/estoque-inteligente/pkg/brdoc"
)

// formato de las fechas de filtro (inclusivas).
const dateLayout = "2006-01-02"

// Recorder crea ventas y sus líneas. Cada línea se persiste junto con el descuento
// de stock y la alerta en la misma transacción: o queda todo o no queda nada.
type Recorder struct {
	tx     inventory.TxRunner
	ledger *inventory.StockLedger
	repos  repository.Repositories
	now    func() time.Time
}

// NewRecorder construye el registrador de ventas.
func NewRecorder(tx inventory.TxRunner, ledger *inventory.StockLedger, repos repository.Repositories) *Recorder {
	return &Recorder{tx: tx, ledger: ledger, repos: repos, now: time.Now}
}

// CreateSale crea la cabecera y, si vienen, sus líneas. Sin TotalAmount el total es la
// suma de las líneas; el servidor no concilia un total enviado por el cliente.
func (r *Recorder) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	now := r.now()
	sale := &entity.Sale{
		ID:               uuid.NewString(),
		CustomerName:     strings.TrimSpace(in.CustomerName),
		CustomerDocument: brdoc.OnlyDigits(in.CustomerDocument),
		PaymentMethod:    in.PaymentMethod,
		Installments:     in.Installments,
		CardBrand:        strings.TrimSpace(in.CardBrand),
		Status:           in.Status,
		Notes:            strings.TrimSpace(in.Notes),
		TotalAmount:      decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if sale.Status == "" {
		sale.Status = entity.SaleStatusCompleted
	}
	if in.TotalAmount != nil {
		sale.TotalAmount = in.TotalAmount.Round(2)
	}
	if err := validateSale(sale, in.CustomerDocument); err != nil {
		return nil, err
	}

	items := make([]*entity.SaleItem, 0, len(in.Items))
	err := r.tx.Run(ctx, func(repos repository.Repositories) error {
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}
		sum := decimal.Zero
		for i, line := range in.Items {
			item, _, err := r.addItemInTx(ctx, repos, sale.ID, line, now)
			if err != nil {
				return prefixField(err, fmt.Sprintf("items[%d]", i))
			}
			items = append(items, item)
			sum = sum.Add(item.LineTotal())
		}
		if in.TotalAmount == nil && len(items) > 0 {
			sale.TotalAmount = sum
			return repos.Sales.Update(ctx, sale)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SalesRecorded.Inc()
	metrics.SaleItemsRecorded.Add(float64(len(items)))
	log.Info().
		Str("sale_id", sale.ID).
		Int("items", len(items)).
		Str("total", sale.TotalAmount.StringFixed(2)).
		Msg("venta registrada")
	out := dto.NewSaleResponse(sale, items)
	return &out, nil
}

// AddItem agrega una línea a una venta existente y descuenta el stock.
// Producto inexistente o stock insuficiente: no se persiste nada.
func (r *Recorder) AddItem(ctx context.Context, in dto.AddSaleItemRequest) (*dto.AddSaleItemResponse, error) {
	var (
		item *entity.SaleItem
		res  *inventory.Result
	)
	err := r.tx.Run(ctx, func(repos repository.Repositories) error {
		sale, err := repos.Sales.GetByID(ctx, in.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("venta %s: %w", in.SaleID, domain.ErrNotFound)
		}
		item, res, err = r.addItemInTx(ctx, repos, sale.ID, in.SaleItemInput, r.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.SaleItemsRecorded.Inc()
	return &dto.AddSaleItemResponse{
		Item:    dto.NewSaleItemResponse(item),
		Product: dto.NewProductResponse(res.Product),
		Alert:   dto.NewAlertPtr(res.Alert),
	}, nil
}

func (r *Recorder) addItemInTx(ctx context.Context, repos repository.Repositories, saleID string, in dto.SaleItemInput, now time.Time) (*entity.SaleItem, *inventory.Result, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, nil, domain.NewValidationError("productId", "es requerido")
	}
	if in.Quantity <= 0 {
		return nil, nil, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	p, err := repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}

	item := &entity.SaleItem{
		ID:        uuid.NewString(),
		SaleID:    saleID,
		ProductID: p.ID,
		Quantity:  in.Quantity,
		Price:     p.SellPrice,
		Discount:  decimal.Zero,
		CreatedAt: now,
	}
	if in.Price != nil {
		item.Price = in.Price.Round(2)
	}
	if in.Discount != nil {
		item.Discount = in.Discount.Round(2)
	}
	if err := validateItem(item); err != nil {
		return nil, nil, fmt.Errorf("línea de %s: %w", p.SKU, err)
	}

	if err := repos.Sales.CreateItem(ctx, item); err != nil {
		return nil, nil, err
	}
	res, err := r.ledger.ConsumeForSaleInTx(ctx, repos, p.ID, item.Quantity, saleID)
	if err != nil {
		return nil, nil, err
	}
	return item, res, nil
}

// DeleteItem elimina la línea; el stock consumido no se repone.
func (r *Recorder) DeleteItem(ctx context.Context, id string) error {
	return r.repos.Sales.DeleteItem(ctx, id)
}

// UpdateSale modifica solo la cabecera; las líneas no se tocan.
func (r *Recorder) UpdateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := r.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CustomerName != nil {
		sale.CustomerName = strings.TrimSpace(*in.CustomerName)
	}
	rawDoc := sale.CustomerDocument
	if in.CustomerDocument != nil {
		rawDoc = *in.CustomerDocument
		sale.CustomerDocument = brdoc.OnlyDigits(rawDoc)
	}
	if in.TotalAmount != nil {
		sale.TotalAmount = in.TotalAmount.Round(2)
	}
	if in.PaymentMethod != nil {
		sale.PaymentMethod = *in.PaymentMethod
	}
	if in.Installments != nil {
		sale.Installments = *in.Installments
	}
	if in.CardBrand != nil {
		sale.CardBrand = strings.TrimSpace(*in.CardBrand)
	}
	if in.Status != nil {
		sale.Status = *in.Status
	}
	if in.Notes != nil {
		sale.Notes = strings.TrimSpace(*in.Notes)
	}
	if err := validateSale(sale, rawDoc); err != nil {
		return nil, err
	}
	sale.UpdatedAt = r.now()
	if err := r.repos.Sales.Update(ctx, sale); err != nil {
		return nil, err
	}
	out := dto.NewSaleResponse(sale, nil)
	return &out, nil
}

// DeleteSale borra primero las líneas y luego la cabecera, sin reponer stock.
func (r *Recorder) DeleteSale(ctx context.Context, id string) error {
	return r.tx.Run(ctx, func(repos repository.Repositories) error {
		sale, err := repos.Sales.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
		}
		n, err := repos.Sales.DeleteItemsBySale(ctx, id)
		if err != nil {
			return err
		}
		log.Debug().Str("sale_id", id).Int("items", n).Msg("venta eliminada")
		return repos.Sales.Delete(ctx, id)
	})
}

// Get devuelve la cabecera con sus líneas.
func (r *Recorder) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := r.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := r.repos.Sales.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entity.SaleItem{}
	}
	out := dto.NewSaleResponse(sale, items)
	return &out, nil
}

// List ventas más recientes primero; From/To en formato YYYY-MM-DD, ambos inclusivos.
func (r *Recorder) List(ctx context.Context, q dto.SaleQuery) ([]dto.SaleResponse, error) {
	filter := repository.SaleFilter{Limit: q.Limit, Offset: q.Offset}
	verr := &domain.ValidationError{}
	if q.From != "" {
		from, err := time.ParseInLocation(dateLayout, q.From, time.Local)
		if err != nil {
			verr.Add("from", "formato esperado YYYY-MM-DD")
		} else {
			filter.From = &from
		}
	}
	if q.To != "" {
		to, err := time.ParseInLocation(dateLayout, q.To, time.Local)
		if err != nil {
			verr.Add("to", "formato esperado YYYY-MM-DD")
		} else {
			end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
			filter.To = &end
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	list, err := r.repos.Sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewSaleResponse(s, nil))
	}
	return out, nil
}

// ListItems líneas de una venta; ErrNotFound si la venta no existe.
func (r *Recorder) ListItems(ctx context.Context, saleID string) ([]dto.SaleItemResponse, error) {
	if _, err := r.mustGet(ctx, saleID); err != nil {
		return nil, err
	}
	items, err := r.repos.Sales.ListItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return dto.NewSaleItemList(items), nil
}

func (r *Recorder) mustGet(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := r.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
	}
	return sale, nil
}

// validateSale reglas de la cabecera: cuotas solo en crédito, marca solo con tarjeta.
// rawDoc es el documento tal como llegó; s.CustomerDocument ya tiene solo dígitos.
func validateSale(s *entity.Sale, rawDoc string) error {
	verr := &domain.ValidationError{}
	if !entity.ValidPaymentMethod(s.PaymentMethod) {
		verr.Add("paymentMethod", "debe ser cash, debit, credit o pix")
	}
	if !entity.ValidSaleStatus(s.Status) {
		verr.Add("status", "debe ser completed o pending")
	}
	if s.Installments < 0 || s.Installments > entity.MaxInstallments {
		verr.Add("installments", fmt.Sprintf("debe estar entre 0 y %d", entity.MaxInstallments))
	} else if s.Installments > 1 && s.PaymentMethod != entity.PaymentCredit {
		verr.Add("installments", "solo se permiten cuotas con crédito")
	}
	if s.CardBrand != "" && s.PaymentMethod != entity.PaymentDebit && s.PaymentMethod != entity.PaymentCredit {
		verr.Add("cardBrand", "solo aplica a débito o crédito")
	}
	if strings.TrimSpace(rawDoc) != "" {
		if err := brdoc.ValidateDocument(rawDoc); err != nil {
			verr.Add("customerDocument", "CPF/CNPJ inválido")
		}
	}
	if s.TotalAmount.IsNegative() {
		verr.Add("totalAmount", "no puede ser negativo")
	}
	return verr.OrNil()
}

func validateItem(it *entity.SaleItem) error {
	verr := &domain.ValidationError{}
	if it.Price.IsNegative() {
		verr.Add("price", "no puede ser negativo")
	}
	if it.Discount.IsNegative() {
		verr.Add("discount", "no puede ser negativo")
	} else if it.Discount.GreaterThan(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))) {
		verr.Add("discount", "supera el total de la línea")
	}
	return verr.OrNil()
}

// prefixField ubica los errores de campo de una línea dentro de la venta (items[i].campo).
func prefixField(err error, prefix string) error {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	out := &domain.ValidationError{}
	for k, v := range verr.Fields {
		out.Add(prefix+"."+k, v)
	}
	return out
}
