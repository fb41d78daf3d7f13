package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-inteligente/internal/domain/entity"
	"github.com/jhoicas/estoque-inteligente/internal/domain/inventory"
)

func TestIsLowStock_Estricto(t *testing.T) {
	assert.True(t, inventory.IsLowStock(4, 5))
	assert.False(t, inventory.IsLowStock(5, 5), "igual al mínimo no es stock bajo")
	assert.False(t, inventory.IsLowStock(0, 0))
	assert.True(t, inventory.IsLowStock(-1, 0))
}

func TestShouldEmit(t *testing.T) {
	assert.True(t, inventory.ShouldEmit(inventory.PolicyAccumulate, true, true), "accumulate repite alertas")
	assert.True(t, inventory.ShouldEmit(inventory.PolicyAccumulate, false, true))
	assert.False(t, inventory.ShouldEmit(inventory.PolicyAccumulate, true, false))

	assert.True(t, inventory.ShouldEmit(inventory.PolicyTransition, false, true))
	assert.False(t, inventory.ShouldEmit(inventory.PolicyTransition, true, true), "transition no repite dentro del período")
	assert.False(t, inventory.ShouldEmit(inventory.PolicyTransition, false, false))
}

func TestParseAlertPolicy(t *testing.T) {
	p, err := inventory.ParseAlertPolicy("")
	require.NoError(t, err)
	assert.Equal(t, inventory.PolicyAccumulate, p)

	p, err = inventory.ParseAlertPolicy("transition")
	require.NoError(t, err)
	assert.Equal(t, inventory.PolicyTransition, p)

	_, err = inventory.ParseAlertPolicy("nunca")
	assert.Error(t, err)
}

func TestAlertTypeAndMessage(t *testing.T) {
	assert.Equal(t, entity.AlertTypeOutOfStock, inventory.AlertTypeFor(0))
	assert.Equal(t, entity.AlertTypeLowStock, inventory.AlertTypeFor(3))
	assert.Equal(t, "Stock bajo: Arroz 5kg (quedan 4, mínimo 5)", inventory.LowStockMessage("Arroz 5kg", 4, 5))
	assert.Contains(t, inventory.LowStockMessage("Feijão", 0, 2), "sin stock")
}

func TestWeightedAverageCost(t *testing.T) {
	// (10 * 2.00 + 10 * 4.00) / 20 = 3.00
	got := inventory.WeightedAverageCost(10, decimal.NewFromInt(2), 10, decimal.NewFromInt(4))
	assert.True(t, got.Equal(decimal.NewFromInt(3)), "got %s", got)

	// sin stock previo: costo de la entrada
	got = inventory.WeightedAverageCost(0, decimal.NewFromInt(9), 5, decimal.RequireFromString("1.50"))
	assert.True(t, got.Equal(decimal.RequireFromString("1.5")), "got %s", got)

	// salida: no cambia el costo
	got = inventory.WeightedAverageCost(10, decimal.NewFromInt(2), -3, decimal.NewFromInt(4))
	assert.True(t, got.Equal(decimal.NewFromInt(2)))
}
