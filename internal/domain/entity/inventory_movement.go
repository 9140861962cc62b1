package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// RefNone referencia de un movimiento que no pertenece a una venta.
const RefNone = "-"

// InventoryMovement registro inmutable de un cambio de stock.
// BalanceAfter es el stock del producto inmediatamente después de aplicar el movimiento.
type InventoryMovement struct {
	ID           string
	Seq          int64 // orden de inserción, desempate al listar
	CreatedAt    time.Time
	ProductID    string
	ProductName  string
	Type         string
	Quantity     int
	BalanceAfter int
	Note         string
	Actor        string
	RefID        string // id de la transacción de venta o "-"
}

// Signed devuelve la cantidad con signo (+IN, -OUT).
func (m *InventoryMovement) Signed() int {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}
