package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, created_at, cashier, member_name, payment_method, total`

// TransactionRepo ventas sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste la cabecera y todas sus líneas. Debe ejecutarse dentro de una tx.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, created_at, cashier, member_name, payment_method, total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, t.ID, t.CreatedAt, t.Cashier, t.MemberName, t.PaymentMethod, t.Total)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: venta %s", domain.ErrDuplicate, t.ID)
		}
		return fmt.Errorf("insert transaction: %w", err)
	}

	itemQuery := `
		INSERT INTO transaction_items (transaction_id, line_no, product_id, product_name, qty, price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, it := range t.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			t.ID, it.LineNo, it.ProductID, it.ProductName, it.Quantity, it.Price, it.Subtotal,
		); err != nil {
			return fmt.Errorf("insert transaction item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas o (nil, nil).
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Transaction{t}); err != nil {
		return nil, err
	}
	return t, nil
}

// ListRecent devuelve hasta limit ventas con sus líneas, la más reciente primero.
func (r *TransactionRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC, seq DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]*entity.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachItems carga las líneas de todas las ventas con una sola consulta.
func (r *TransactionRepo) attachItems(ctx context.Context, txs []*entity.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Transaction, len(txs))
	ids := make([]string, 0, len(txs))
	for _, t := range txs {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT transaction_id, line_no, product_id, product_name, qty, price, subtotal
		FROM transaction_items WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.TransactionItem
		if err := rows.Scan(&it.TransactionID, &it.LineNo, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.Price, &it.Subtotal); err != nil {
			return fmt.Errorf("scan transaction item: %w", err)
		}
		t := byID[it.TransactionID]
		t.Items = append(t.Items, it)
	}
	return rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	if err := row.Scan(&t.ID, &t.CreatedAt, &t.Cashier, &t.MemberName, &t.PaymentMethod, &t.Total); err != nil {
		return nil, err
	}
	t.Items = []entity.TransactionItem{}
	return &t, nil
}
