package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	domaininv "github.com/jhoicas/estoque-inteligente/internal/domain/inventory"
)

// quantity=10, min=5, ajuste -6 -> quantity=4 y exactamente una alerta.
func TestAdjustStock_QuedaBajoElMinimo(t *testing.T) {
	e := newEnv(t, inventory.Options{})
	p := e.product(t, "ARZ-5", 10, 5)
	assert.Equal(t, 0, e.alertsFor(t, p.ID))

	res, err := e.products.AdjustStock(e.ctx, p.ID, dto.AdjustStockRequest{Delta: -6})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Product.Quantity)
	assert.True(t, res.Product.LowStock)
	require.NotNil(t, res.Alert)
	assert.Equal(t, entity.AlertTypeLowStock, res.Alert.Type)
	assert.Equal(t, 1, e.alertsFor(t, p.ID))

	got, err := e.products.Get(e.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Quantity)
}

func TestAdjustStock_QuantityEsAnteriorMasDelta(t *testing.T) {
	e := newEnv(t, inventory.Options{})
	p := e.product(t, "FEI-1", 20, 0)

	qty := 20
	for _, delta := range []int{5, -3, -12, 7, -17} {
		res, err := e.products.AdjustStock(e.ctx, p.ID, dto.AdjustStockRequest{Delta: delta})
		require.NoError(t, err)
		qty += delta
		assert.Equal(t, qty, res.Product.Quantity)
	}
	assert.Equal(t, 0, qty)
}

func TestAdjustStock_PoliticaAcumulaUnaAlertaPorAjuste(t *testing.T) {
	e := newEnv(t, inventory.Options{AlertPolicy: domaininv.PolicyAccumulate})
	p := e.product(t, "CAF-1", 10, 5)

	for i := 0; i < 3; i++ {
		_, err := e.products.AdjustStock(e.ctx, p.ID, dto.AdjustStockRequest{Delta: -2})
		require.NoError(t, err)
	}
	// 8 (sin alerta), 6 (sin alerta), 4 (alerta)
	assert.Equal(t, 1, e.alertsFor(t, p.ID))

	_, err := e.products.AdjustStock(e.ctx, p.ID, dto.AdjustStockRequest{Delta: -1})
	require.NoError(t, err)
	_, err = e.products.AdjustStock(e.ctx, p.ID, dto.AdjustStockRequest{Delta: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, e.alertsFor(t, p.ID), "cada mutación bajo el mínimo agrega otra")
}

func TestAdjustStock_PoliticaTransicion(t *testing.T) {
	e := newEnv(t, inventory.Options{AlertPolicy: domaininv.PolicyTransition})
	p := e.product(t, "ACU-1", 10, 5)

	for _, d := range []int{-6, -1, -1} {
		_, err := e.products.AdjustStock(e.ctx, p.ID, dto.AdjustStockRequest{Delta: d})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, e.alertsFor(t, p.ID), "una sola alerta por período bajo el mínimo")

	// reponer y volver a caer abre un nuevo período
	_, err := e.products.AdjustStock(e.ctx, p.ID, dto.AdjustStockRequest{Delta: 10})
	require.NoError(t, err)
	res, err := e.products.AdjustStock(e.ctx, p.ID, dto.AdjustStockRequest{Delta: -12})
	require.NoError(t, err)
	require.NotNil(t, res.Alert)
	assert.Equal(t, entity.AlertTypeOutOfStock, res.Alert.Type)
	assert.Equal(t, 2, e.alertsFor(t, p.ID))
}

func TestAdjustStock_StockInsuficiente(t *testing.T) {
	e := newEnv(t, inventory.Options{})
	p := e.product(t, "OLE-1", 3, 1)

	_, err := e.products.AdjustStock(e.ctx, p.ID, dto.AdjustStockRequest{Delta: -4})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := e.products.Get(e.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, 0, e.alertsFor(t, p.ID), "un ajuste rechazado no deja alerta")

	_, err = e.products.AdjustStock(e.ctx, p.ID, dto.AdjustStockRequest{Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.products.AdjustStock(e.ctx, "nope", dto.AdjustStockRequest{Delta: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_EntradaConCostoRecalculaPromedio(t *testing.T) {
	e := newEnv(t, inventory.Options{})
	p := e.product(t, "LEI-1", 10, 0) // costo 5

	cost := decimal.NewFromInt(8)
	res, err := e.products.AdjustStock(e.ctx, p.ID, dto.AdjustStockRequest{Delta: 10, UnitCost: &cost})
	require.NoError(t, err)
	// (10*5 + 10*8) / 20 = 6.5
	assert.True(t, res.Product.CostPrice.Equal(decimal.RequireFromString("6.5")), "costo %s", res.Product.CostPrice)
}

func TestCreate_NaceBajoElMinimo(t *testing.T) {
	e := newEnv(t, inventory.Options{})
	p := e.product(t, "NEW-1", 2, 5)
	assert.True(t, p.LowStock)
	assert.Equal(t, 1, e.alertsFor(t, p.ID))

	movs, err := e.products.Movements(e.ctx, p.ID, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeInitial, movs[0].Type)
	assert.Equal(t, 2, movs[0].After)
}

func TestCreate_Validaciones(t *testing.T) {
	e := newEnv(t, inventory.Options{})
	e.product(t, "DUP-1", 1, 0)

	_, err := e.products.Create(e.ctx, dto.CreateProductRequest{Name: "Outro", SKU: "dup-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "SKU sin distinguir mayúsculas")

	_, err = e.products.Create(e.ctx, dto.CreateProductRequest{
		Name: "X", SKU: "X-1", CategoryID: "nope", SellPrice: decimal.NewFromInt(-1),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "categoryId")
	assert.Contains(t, verr.Fields, "sellPrice")

	list, err := e.products.List(e.ctx, dto.ProductQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdate_AlertaSoloSiCambiaStock(t *testing.T) {
	e := newEnv(t, inventory.Options{})
	p := e.product(t, "UPD-1", 10, 5)

	_, err := e.products.Update(e.ctx, p.ID, dto.UpdateProductRequest{Name: ptr("Renomeado")})
	require.NoError(t, err)
	assert.Equal(t, 0, e.alertsFor(t, p.ID))

	out, err := e.products.Update(e.ctx, p.ID, dto.UpdateProductRequest{Quantity: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Quantity)
	assert.Equal(t, "Renomeado", out.Name)
	assert.Equal(t, 1, e.alertsFor(t, p.ID))

	// subir el mínimo por encima del stock también cuenta
	q := e.product(t, "UPD-2", 10, 5)
	_, err = e.products.Update(e.ctx, q.ID, dto.UpdateProductRequest{MinQuantity: ptr(12)})
	require.NoError(t, err)
	assert.Equal(t, 1, e.alertsFor(t, q.ID))

	movs, err := e.products.Movements(e.ctx, p.ID, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeEdit, movs[0].Type, "más recientes primero")
	assert.Equal(t, -7, movs[0].Delta)
}

func TestUpdate_SKUDuplicadoYNoEncontrado(t *testing.T) {
	e := newEnv(t, inventory.Options{})
	e.product(t, "A-1", 1, 0)
	b := e.product(t, "B-1", 1, 0)

	_, err := e.products.Update(e.ctx, b.ID, dto.UpdateProductRequest{SKU: ptr("a-1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = e.products.Update(e.ctx, b.ID, dto.UpdateProductRequest{SKU: ptr("b-1")})
	assert.NoError(t, err, "cambiar solo mayúsculas del propio SKU")

	_, err = e.products.Update(e.ctx, "nope", dto.UpdateProductRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltrosYBusqueda(t *testing.T) {
	e := newEnv(t, inventory.Options{})
	food := e.category(t, "Alimentos", "")
	grains := e.category(t, "Grãos", food)

	_, err := e.products.Create(e.ctx, dto.CreateProductRequest{Name: "Feijão Preto", SKU: "FEI-PRT", CategoryID: grains})
	require.NoError(t, err)
	_, err = e.products.Create(e.ctx, dto.CreateProductRequest{Name: "Açúcar", SKU: "ACU-1", CategoryID: food})
	require.NoError(t, err)
	_, err = e.products.Create(e.ctx, dto.CreateProductRequest{Name: "Sabão", SKU: "SAB-1", Barcode: "7891234"})
	require.NoError(t, err)

	byText, err := e.products.List(e.ctx, dto.ProductQuery{Q: "feijao"})
	require.NoError(t, err)
	require.Len(t, byText, 1, "búsqueda sin acentos")
	assert.Equal(t, "FEI-PRT", byText[0].SKU)

	byBarcode, err := e.products.List(e.ctx, dto.ProductQuery{Q: "78912"})
	require.NoError(t, err)
	assert.Len(t, byBarcode, 1)

	direct, err := e.products.List(e.ctx, dto.ProductQuery{CategoryID: food})
	require.NoError(t, err)
	assert.Len(t, direct, 1)

	subtree, err := e.products.List(e.ctx, dto.ProductQuery{CategoryID: food, IncludeSubcategories: true})
	require.NoError(t, err)
	assert.Len(t, subtree, 2)

	bySKU, err := e.products.GetBySKU(e.ctx, "sab-1")
	require.NoError(t, err)
	assert.Equal(t, "Sabão", bySKU.Name)
	_, err = e.products.GetBySKU(e.ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLowStockYDelete(t *testing.T) {
	e := newEnv(t, inventory.Options{})
	a := e.product(t, "LOW-A", 1, 5)
	e.product(t, "OK-B", 9, 5)
	c := e.product(t, "LOW-C", 0, 2)

	low, err := e.products.LowStock(e.ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, c.ID, low[0].ID, "menor stock primero")
	assert.Equal(t, a.ID, low[1].ID)

	require.NoError(t, e.products.Delete(e.ctx, a.ID))
	_, err = e.products.Get(e.ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, e.products.Delete(e.ctx, a.ID), domain.ErrNotFound)
}

func TestProduct_PreciosADosDecimales(t *testing.T) {
	e := newEnv(t, inventory.Options{})
	p, err := e.products.Create(e.ctx, dto.CreateProductRequest{
		Name: "Café", SKU: "CAF-2", CostPrice: decimal.RequireFromString("3.3333"), SellPrice: decimal.RequireFromString("5.005"),
	})
	require.NoError(t, err)
	assert.Equal(t, "3.33", p.CostPrice.String())
	assert.Equal(t, "5.01", p.SellPrice.String())

	sell := decimal.RequireFromString("6.129")
	up, err := e.products.Update(e.ctx, p.ID, dto.UpdateProductRequest{SellPrice: &sell})
	require.NoError(t, err)
	assert.Equal(t, "6.13", up.SellPrice.String())
}
