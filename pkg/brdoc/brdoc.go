// Package brdoc valida documentos brasileños (CNPJ, CPF) y CEP sobre paemuri/brdoc
// y normaliza a solo dígitos para persistir.
package brdoc

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	docs "github.com/paemuri/brdoc"
)

var (
	ErrCNPJ = errors.New("brdoc: CNPJ inválido")
	ErrCPF  = errors.New("brdoc: CPF inválido")
	ErrCEP  = errors.New("brdoc: CEP inválido")
)

// ValidateCNPJ acepta "11.222.333/0001-81" o "11222333000181". Cualquier otro carácter
// (letras, espacios internos) lo invalida.
func ValidateCNPJ(taxID string) error {
	if !docs.IsCNPJ(strings.TrimSpace(taxID)) {
		return ErrCNPJ
	}
	return nil
}

// ValidateCPF acepta "529.982.247-25" o "52998224725".
func ValidateCPF(doc string) error {
	if !docs.IsCPF(strings.TrimSpace(doc)) {
		return ErrCPF
	}
	return nil
}

// ValidateDocument acepta CPF (11 dígitos) o CNPJ (14 dígitos).
func ValidateDocument(doc string) error {
	switch n := len(OnlyDigits(doc)); n {
	case 11:
		return ValidateCPF(doc)
	case 14:
		return ValidateCNPJ(doc)
	default:
		return fmt.Errorf("brdoc: documento debe ser CPF (11) o CNPJ (14 dígitos), se encontraron %d", n)
	}
}

// ValidateCEP "01310-100" o "01310100".
func ValidateCEP(cep string) error {
	if !docs.IsCEP(strings.TrimSpace(cep)) {
		return ErrCEP
	}
	return nil
}

// OnlyDigits quita máscara y separadores.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
