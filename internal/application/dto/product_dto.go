package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertProductRequest entrada para crear (sin id) o actualizar (con id) un producto.
type UpsertProductRequest struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	SellPrice decimal.Decimal `json:"sell_price"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	Stock     *int            `json:"stock,omitempty"` // nil en actualización = conservar stock
	MinStock  int             `json:"min_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SellPrice decimal.Decimal `json:"sell_price"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"min_stock"`
	LowStock  bool            `json:"low_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UpsertProductResponse producto resultante y, si hubo cambio de stock, el movimiento generado.
type UpsertProductResponse struct {
	Product  ProductResponse   `json:"product"`
	Created  bool              `json:"created"`
	Movement *MovementResponse `json:"movement,omitempty"`
}
