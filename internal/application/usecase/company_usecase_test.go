package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-inteligente/internal/application/dto"
	"github.com/jhoicas/estoque-inteligente/internal/application/usecase"
	"github.com/jhoicas/estoque-inteligente/internal/domain"
	"github.com/jhoicas/estoque-inteligente/internal/infrastructure/memory"
)

func TestCompany_GetSinConfigurar(t *testing.T) {
	uc := usecase.NewCompanyUseCase(memory.NewStore().Repositories().Company)
	_, err := uc.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompany_SaveEsUpsert(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCompanyUseCase(memory.NewStore().Repositories().Company)

	first, err := uc.Save(ctx, dto.CompanyRequest{
		Name:    "Mercadinho Bom Preço",
		CNPJ:    "11.222.333/0001-81",
		ZipCode: "01310-100",
		State:   "sp",
	})
	require.NoError(t, err)
	assert.Equal(t, "11222333000181", first.CNPJ)
	assert.Equal(t, "01310100", first.ZipCode)
	assert.Equal(t, "SP", first.State)

	second, err := uc.Save(ctx, dto.CompanyRequest{Name: "Bom Preço Ltda"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "el perfil es único")
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Empty(t, second.CNPJ, "save reemplaza el perfil completo")

	got, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bom Preço Ltda", got.Name)
}

func TestCompany_SaveValidaDocumentos(t *testing.T) {
	uc := usecase.NewCompanyUseCase(memory.NewStore().Repositories().Company)
	_, err := uc.Save(context.Background(), dto.CompanyRequest{
		Name: "X", CNPJ: "11.222.333/0001-80", ZipCode: "123",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "cnpj")
	assert.Contains(t, verr.Fields, "zipCode")
}

func TestCompany_SaveRechazaDocumentosSinDigitos(t *testing.T) {
	uc := usecase.NewCompanyUseCase(memory.NewStore().Repositories().Company)
	_, err := uc.Save(context.Background(), dto.CompanyRequest{
		Name: "X", CNPJ: "no-tengo", ZipCode: "abc",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "cnpj")
	assert.Contains(t, verr.Fields, "zipCode")

	_, err = uc.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound, "nada se guarda")
}
