package repository

import (
	"context"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
)

// TransactionRepository persiste ventas junto con sus líneas.
// GetByID devuelve (nil, nil) si la venta no existe.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Transaction, error)
}
