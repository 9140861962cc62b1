package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea solicitada en caja.
type SaleLineRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// CreateTransactionRequest body para POST /api/transactions.
type CreateTransactionRequest struct {
	Items         []SaleLineRequest `json:"items"`
	MemberName    string            `json:"member_name,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
}

// TransactionItemResponse línea de una venta.
type TransactionItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Qty         int             `json:"qty"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// TransactionResponse recibo de una venta.
type TransactionResponse struct {
	ID            string                    `json:"id"`
	CreatedAt     time.Time                 `json:"created_at"`
	Cashier       string                    `json:"cashier"`
	MemberName    string                    `json:"member_name"`
	PaymentMethod string                    `json:"payment_method"`
	Total         decimal.Decimal           `json:"total"`
	Items         []TransactionItemResponse `json:"items"`
}
