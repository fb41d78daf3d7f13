package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa el costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con stock actual negativo o nulo el costo de la entrada reemplaza al anterior.
func WeightedAverageCost(stockActual int, costoActual decimal.Decimal, cantEntrada int, costoEntrada decimal.Decimal) decimal.Decimal {
	if cantEntrada <= 0 {
		return costoActual
	}
	if stockActual <= 0 {
		return costoEntrada.Round(2)
	}
	actual := decimal.NewFromInt(int64(stockActual))
	entrada := decimal.NewFromInt(int64(cantEntrada))
	num := actual.Mul(costoActual).Add(entrada.Mul(costoEntrada))
	return num.Div(actual.Add(entrada)).Round(2)
}
