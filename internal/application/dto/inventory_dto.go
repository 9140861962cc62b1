package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAdjustmentRequest body para POST /api/stock-adjustments.
type StockAdjustmentRequest struct {
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"` // IN | OUT (sin distinguir mayúsculas)
	Qty       int              `json:"qty"`
	Note      string           `json:"note,omitempty"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"` // solo IN: recalcula el costo promedio
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Type         string    `json:"type"`
	Qty          int       `json:"qty"`
	BalanceAfter int       `json:"balance_after"`
	Note         string    `json:"note"`
	Actor        string    `json:"actor"`
	RefID        string    `json:"ref_id"`
}

// ReconcileResponse compara el stock del catálogo con la suma del libro.
type ReconcileResponse struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Stock         int    `json:"stock"`
	LedgerBalance int    `json:"ledger_balance"`
	Movements     int    `json:"movements"`
	Consistent    bool   `json:"consistent"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo su stock mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	CurrentStock       int             `json:"current_stock"`
	MinStock           int             `json:"min_stock"`
	IdealStock         int             `json:"ideal_stock"`          // ceil(MinStock * 1.5)
	SuggestedOrderQty  int             `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // buy_price
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	GrossMarginPct     decimal.Decimal `json:"gross_margin_pct"`
	UnitsSoldLast90d   int             `json:"units_sold_last_90d"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
