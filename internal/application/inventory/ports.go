package inventory

import (
	"context"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacenamiento, pasando repositorios
// atados a esa transacción. Antes de llamar a fn bloquea los productos indicados (sin duplicados,
// en orden lexicográfico) hasta el commit o rollback; si fn devuelve error no se aplica nada.
type TxRunner interface {
	Run(ctx context.Context, productIDs []string, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// LowStockNotifier recibe los productos que quedaron en o bajo su mínimo tras un commit.
// No bloquea ni falla: la operación principal ya está confirmada.
type LowStockNotifier interface {
	NotifyLowStock(products []entity.Product)
}

// NopNotifier descarta los avisos.
type NopNotifier struct{}

// NotifyLowStock no hace nada.
func (NopNotifier) NotifyLowStock([]entity.Product) {}
