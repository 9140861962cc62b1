package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
	PaymentOther    = "other"
)

// MemberNone nombre de socio cuando la venta no se asocia a ninguno.
const MemberNone = "-"

// Transaction venta registrada en caja. Inmutable una vez creada; Total = Σ Items[i].Subtotal.
type Transaction struct {
	ID            string
	CreatedAt     time.Time
	Cashier       string
	MemberName    string
	PaymentMethod string
	Total         decimal.Decimal
	Items         []TransactionItem
}

// TransactionItem línea de una venta; Price es una foto del precio de venta al momento de vender.
type TransactionItem struct {
	TransactionID string
	LineNo        int
	ProductID     string
	ProductName   string
	Quantity      int
	Price         decimal.Decimal
	Subtotal      decimal.Decimal
}
