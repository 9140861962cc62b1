package dto

import "time"

// NotificationResponse aviso de stock bajo.
type NotificationResponse struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Stock       int       `json:"stock"`
	MinStock    int       `json:"min_stock"`
}
