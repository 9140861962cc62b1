package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo avisos de stock bajo sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create anexa un aviso.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, created_at, product_id, product_name, stock, min_stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query, n.ID, n.CreatedAt, n.ProductID, n.ProductName, n.Stock, n.MinStock).Scan(&n.Seq)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListRecent devuelve hasta limit avisos, el más reciente primero.
func (r *NotificationRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx, `
		SELECT seq, id, created_at, product_id, product_name, stock, min_stock
		FROM notifications ORDER BY created_at DESC, seq DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Notification, 0)
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.Seq, &n.ID, &n.CreatedAt, &n.ProductID, &n.ProductName, &n.Stock, &n.MinStock); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}
