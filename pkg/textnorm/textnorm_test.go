package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-inteligente/pkg/textnorm"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "feijao preto", textnorm.Fold("  Feijão   Preto "))
	assert.Equal(t, "eletronicos", textnorm.Fold("ELETRÔNICOS"))
	assert.Equal(t, "acucar cristal", textnorm.Fold("Açúcar Cristal"))
	assert.Equal(t, "", textnorm.Fold("   "))
}

func TestContainsAndEqual(t *testing.T) {
	assert.True(t, textnorm.Contains("Pão Francês 50g", "frances"))
	assert.False(t, textnorm.Contains("Pão Francês", "queijo"))
	assert.True(t, textnorm.Equal("Eletrônicos", "eletronicos"))
}

func TestSearchText(t *testing.T) {
	assert.Equal(t, "cafe torrado caf-001 789100", textnorm.SearchText("Café Torrado", "CAF-001", "", "789100"))
}
