package inventory

import "github.com/shopspring/decimal"

// WeightedCost implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedCost(stock int, currentCost decimal.Decimal, qtyIn int, costIn decimal.Decimal) decimal.Decimal {
	sum := stock + qtyIn
	if sum <= 0 {
		return decimal.Zero
	}
	num := decimal.NewFromInt(int64(stock)).Mul(currentCost).
		Add(decimal.NewFromInt(int64(qtyIn)).Mul(costIn))
	return num.Div(decimal.NewFromInt(int64(sum))).Round(2)
}
