package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/application/sales"
	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/infrastructure/memory"
)

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	recorder *sales.Recorder
}

func newFixture(t *testing.T, opts inventory.Options) *fixture {
	t.Helper()
	store := memory.NewStore()
	ledger := inventory.NewStockLedger(store, opts)
	return &fixture{
		ctx:      context.Background(),
		store:    store,
		recorder: sales.NewRecorder(store, ledger, store.Repositories()),
	}
}

func (f *fixture) product(t *testing.T, id string, qty, min int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.store.Repositories().Products.Create(f.ctx, &entity.Product{
		ID: id, Name: "Produto " + id, SKU: "SKU-" + id,
		CostPrice: decimal.NewFromInt(4), SellPrice: decimal.NewFromInt(10),
		Quantity: qty, MinQuantity: min, CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) quantity(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Repositories().Products.GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateSale_ValoresPorDefecto(t *testing.T) {
	f := newFixture(t, inventory.Options{})

	sale, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{
		CustomerName:     " Maria ",
		CustomerDocument: "529.982.247-25",
		PaymentMethod:    entity.PaymentPix,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.Equal(t, "Maria", sale.CustomerName)
	assert.Equal(t, "52998224725", sale.CustomerDocument)
	assert.True(t, sale.TotalAmount.IsZero())
}

func TestCreateSale_Validaciones(t *testing.T) {
	f := newFixture(t, inventory.Options{})

	cases := []struct {
		name  string
		in    dto.CreateSaleRequest
		field string
	}{
		{"medio de pago desconocido", dto.CreateSaleRequest{PaymentMethod: "cheque"}, "paymentMethod"},
		{"cuotas sin crédito", dto.CreateSaleRequest{PaymentMethod: entity.PaymentDebit, Installments: 3}, "installments"},
		{"demasiadas cuotas", dto.CreateSaleRequest{PaymentMethod: entity.PaymentCredit, Installments: 13}, "installments"},
		{"marca con efectivo", dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash, CardBrand: "visa"}, "cardBrand"},
		{"documento inválido", dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash, CustomerDocument: "111.111.111-11"}, "customerDocument"},
		{"estado desconocido", dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash, Status: "refunded"}, "status"},
		{"documento sin dígitos", dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash, CustomerDocument: "ABC-XYZ"}, "customerDocument"},
		{"documento con letras", dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash, CustomerDocument: "529.982.247-25x"}, "customerDocument"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.recorder.CreateSale(f.ctx, tc.in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	list, err := f.recorder.List(f.ctx, dto.SaleQuery{})
	require.NoError(t, err)
	assert.Empty(t, list, "ninguna cabecera inválida se persiste")
}

func TestCreateSale_CreditoEnCuotas(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	sale, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCredit, Installments: 6, CardBrand: "Visa",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, sale.Installments)
	assert.Equal(t, "Visa", sale.CardBrand)
}

func TestCreateSale_ConLineasCalculaTotal(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	f.product(t, "p1", 10, 2)
	f.product(t, "p2", 5, 0)

	sale, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemInput{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1, Price: dec("7.50"), Discount: dec("0.50")},
		},
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 2)
	// 2 * 10 + (7.50 - 0.50)
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(27)), "total %s", sale.TotalAmount)
	assert.Equal(t, 8, f.quantity(t, "p1"))
	assert.Equal(t, 4, f.quantity(t, "p2"))
}

func TestCreateSale_TotalEnviadoNoSeConcilia(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	f.product(t, "p1", 10, 0)

	sale, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		TotalAmount:   dec("99.90"),
		Items:         []dto.SaleItemInput{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "99.9", sale.TotalAmount.String())
}

func TestCreateSale_LineaFallidaRevierteTodo(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	f.product(t, "p1", 10, 0)
	f.product(t, "p2", 1, 0)

	_, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemInput{
			{ProductID: "p1", Quantity: 4},
			{ProductID: "p2", Quantity: 2},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, f.quantity(t, "p1"), "la primera línea se revierte")
	list, err := f.recorder.List(f.ctx, dto.SaleQuery{})
	require.NoError(t, err)
	assert.Empty(t, list, "la cabecera tampoco queda")
}

func TestCreateSale_ErrorDeLineaConIndice(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	f.product(t, "p1", 10, 0)

	_, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemInput{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p1", Quantity: 1, Discount: dec("50")},
		},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items[1].discount")
}

// Venta que deja el producto en cero con mínimo > 0 emite alerta de sin stock.
func TestAddItem_ConsumeStockYAlerta(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	f.product(t, "p1", 3, 1)

	sale, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash})
	require.NoError(t, err)

	res, err := f.recorder.AddItem(f.ctx, dto.AddSaleItemRequest{
		SaleID:        sale.ID,
		SaleItemInput: dto.SaleItemInput{ProductID: "p1", Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Product.Quantity)
	assert.True(t, res.Item.Price.Equal(decimal.NewFromInt(10)), "precio por defecto = precio de venta")
	require.NotNil(t, res.Alert)
	assert.Equal(t, entity.AlertTypeOutOfStock, res.Alert.Type)
	require.NotNil(t, res.Alert.ProductID)
	assert.Equal(t, "p1", *res.Alert.ProductID)

	assert.Equal(t, 0, f.quantity(t, "p1"))
	movs, err := f.store.Repositories().Movements.ListByProduct(f.ctx, "p1", 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeSale, movs[0].Type)
	assert.Equal(t, sale.ID, movs[0].Reference)
}

func TestAddItem_ProductoInexistenteNoPersisteNada(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	sale, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash})
	require.NoError(t, err)

	_, err = f.recorder.AddItem(f.ctx, dto.AddSaleItemRequest{
		SaleID:        sale.ID,
		SaleItemInput: dto.SaleItemInput{ProductID: "fantasma", Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	items, err := f.recorder.ListItems(f.ctx, sale.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddItem_VentaInexistente(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	f.product(t, "p1", 3, 0)

	_, err := f.recorder.AddItem(f.ctx, dto.AddSaleItemRequest{
		SaleID:        "nope",
		SaleItemInput: dto.SaleItemInput{ProductID: "p1", Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 3, f.quantity(t, "p1"))
}

func TestAddItem_StockInsuficienteRevierteLinea(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	f.product(t, "p1", 2, 0)
	sale, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash})
	require.NoError(t, err)

	_, err = f.recorder.AddItem(f.ctx, dto.AddSaleItemRequest{
		SaleID:        sale.ID,
		SaleItemInput: dto.SaleItemInput{ProductID: "p1", Quantity: 5},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	items, err := f.recorder.ListItems(f.ctx, sale.ID)
	require.NoError(t, err)
	assert.Empty(t, items, "la línea no queda sin su descuento de stock")
	assert.Equal(t, 2, f.quantity(t, "p1"))
}

func TestAddItem_PermiteNegativoSiSeConfigura(t *testing.T) {
	f := newFixture(t, inventory.Options{AllowNegative: true})
	f.product(t, "p1", 2, 0)
	sale, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash})
	require.NoError(t, err)

	res, err := f.recorder.AddItem(f.ctx, dto.AddSaleItemRequest{
		SaleID:        sale.ID,
		SaleItemInput: dto.SaleItemInput{ProductID: "p1", Quantity: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, -3, res.Product.Quantity)
}

func TestDeleteSale_CascadaSinReponerStock(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	f.product(t, "p1", 10, 0)

	sale, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemInput{{ProductID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)
	itemID := sale.Items[0].ID

	require.NoError(t, f.recorder.DeleteSale(f.ctx, sale.ID))

	_, err = f.recorder.Get(f.ctx, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	it, err := f.store.Repositories().Sales.GetItem(f.ctx, itemID)
	require.NoError(t, err)
	assert.Nil(t, it)
	assert.Equal(t, 6, f.quantity(t, "p1"), "el stock consumido no vuelve")

	assert.ErrorIs(t, f.recorder.DeleteSale(f.ctx, sale.ID), domain.ErrNotFound)
}

func TestDeleteItem_NoReponeStock(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	f.product(t, "p1", 10, 0)
	sale, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemInput{{ProductID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)

	require.NoError(t, f.recorder.DeleteItem(f.ctx, sale.Items[0].ID))
	assert.Equal(t, 6, f.quantity(t, "p1"))
	assert.ErrorIs(t, f.recorder.DeleteItem(f.ctx, sale.Items[0].ID), domain.ErrNotFound)
}

func TestUpdateSale_SoloCabecera(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	sale, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash})
	require.NoError(t, err)

	status := entity.SaleStatusPending
	notes := "entregar amanhã"
	out, err := f.recorder.UpdateSale(f.ctx, sale.ID, dto.UpdateSaleRequest{Status: &status, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPending, out.Status)
	assert.Equal(t, notes, out.Notes)
	assert.Equal(t, entity.PaymentCash, out.PaymentMethod)

	brand := "elo"
	_, err = f.recorder.UpdateSale(f.ctx, sale.ID, dto.UpdateSaleRequest{CardBrand: &brand})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.recorder.UpdateSale(f.ctx, "nope", dto.UpdateSaleRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_RangoDeFechas(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	repos := f.store.Repositories()
	day := func(d int) time.Time { return time.Date(2026, 3, d, 15, 0, 0, 0, time.Local) }
	for i, d := range []int{1, 10, 20} {
		require.NoError(t, repos.Sales.Create(f.ctx, &entity.Sale{
			ID: string(rune('a' + i)), PaymentMethod: entity.PaymentCash, Status: entity.SaleStatusCompleted,
			TotalAmount: decimal.Zero, CreatedAt: day(d), UpdatedAt: day(d),
		}))
	}

	list, err := f.recorder.List(f.ctx, dto.SaleQuery{From: "2026-03-10", To: "2026-03-20"})
	require.NoError(t, err)
	require.Len(t, list, 2, "ambos extremos son inclusivos")
	assert.Equal(t, "c", list[0].ID, "más recientes primero")
	assert.Nil(t, list[0].Items)

	_, err = f.recorder.List(f.ctx, dto.SaleQuery{From: "10/03/2026"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "from")
}

func TestCreateSale_DocumentoSeGuardaSoloConDigitos(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	sale, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentPix, CustomerDocument: "529.982.247-25",
	})
	require.NoError(t, err)
	assert.Equal(t, "52998224725", sale.CustomerDocument)

	_, err = f.recorder.UpdateSale(f.ctx, sale.ID, dto.UpdateSaleRequest{CustomerDocument: ptr("ABC-XYZ")})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "customerDocument")

	got, err := f.recorder.Get(f.ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "52998224725", got.CustomerDocument, "el documento anterior se conserva")
}

// Los importes se guardan con dos decimales, igual que NUMERIC(14,2) en PostgreSQL.
func TestCreateSale_ImportesADosDecimales(t *testing.T) {
	f := newFixture(t, inventory.Options{})
	f.product(t, "p1", 10, 0)

	sale, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemInput{{ProductID: "p1", Quantity: 3, Price: dec("1.005"), Discount: dec("0.004")}},
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "1.01", sale.Items[0].Price.StringFixed(2))
	assert.True(t, sale.Items[0].Discount.IsZero())
	assert.Equal(t, "3.03", sale.TotalAmount.String())

	withTotal, err := f.recorder.CreateSale(f.ctx, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash, TotalAmount: dec("10.999"),
	})
	require.NoError(t, err)
	assert.Equal(t, "11", withTotal.TotalAmount.String())
}

func ptr[T any](v T) *T { return &v }
