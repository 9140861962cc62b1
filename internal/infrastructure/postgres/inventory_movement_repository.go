package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `seq, id, created_at, product_id, product_name, type, qty, balance_after, note, actor, ref_id`

// InventoryMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create anexa un movimiento; la columna seq fija el orden de inserción.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, created_at, product_id, product_name, type, qty, balance_after, note, actor, ref_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.CreatedAt, m.ProductID, m.ProductName, m.Type, m.Quantity, m.BalanceAfter,
		m.Note, m.Actor, m.RefID,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListRecent devuelve hasta limit movimientos, el más reciente primero.
func (r *InventoryMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements ORDER BY created_at DESC, seq DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

// ListByProduct devuelve los movimientos de un producto en orden de inserción.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE product_id = $1 ORDER BY seq`
	return r.list(ctx, query, productID)
}

func (r *InventoryMovementRepo) list(ctx context.Context, query string, arg any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.InventoryMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	err := row.Scan(&m.Seq, &m.ID, &m.CreatedAt, &m.ProductID, &m.ProductName, &m.Type,
		&m.Quantity, &m.BalanceAfter, &m.Note, &m.Actor, &m.RefID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
