package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo de la koperasi.
// Stock nunca es negativo; solo cambia por ventas, ajustes o correcciones de catálogo,
// y cada cambio deja un InventoryMovement.
type Product struct {
	ID        string
	Name      string
	SellPrice decimal.Decimal // precio de venta
	BuyPrice  decimal.Decimal // costo de compra (promedio ponderado en entradas con costo)
	Stock     int
	MinStock  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLowStock indica si el stock está en o por debajo del mínimo configurado.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
