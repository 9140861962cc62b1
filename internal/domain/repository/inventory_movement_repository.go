package repository

import (
	"context"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto del libro de movimientos (solo anexar).
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// ListRecent devuelve los movimientos más recientes primero (desempate por orden de inserción).
	ListRecent(ctx context.Context, limit int) ([]*entity.InventoryMovement, error)
	// ListByProduct devuelve todos los movimientos de un producto en orden de inserción.
	ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryMovement, error)
}
