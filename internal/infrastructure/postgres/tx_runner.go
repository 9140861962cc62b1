package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/koperasi-api/internal/application/inventory"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
	"github.com/jhoicas/koperasi-api/pkg/keylock"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// productLockClass espacio de nombres de los advisory locks de productos.
const productLockClass = 7411

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, toma un advisory lock transaccional por producto (ordenados, sin
// duplicados), ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los locks se liberan solos al terminar la transacción.
func (r *TxRunner) Run(ctx context.Context, productIDs []string, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	txRepo repository.TransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, id := range keylock.SortedUnique(productIDs) {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, hashtext($2))`, productLockClass, id); err != nil {
			return fmt.Errorf("lock producto %s: %w", id, err)
		}
	}

	if err := fn(
		NewProductRepository(tx),
		NewInventoryMovementRepository(tx),
		NewTransactionRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
