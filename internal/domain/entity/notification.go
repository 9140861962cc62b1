package entity

import "time"

// Notification aviso informativo de stock bajo.
type Notification struct {
	ID          string
	Seq         int64
	CreatedAt   time.Time
	ProductID   string
	ProductName string
	Stock       int
	MinStock    int
}
