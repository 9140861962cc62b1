package repository

import (
	"context"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
)

// NotificationRepository guarda avisos de stock bajo.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Notification, error)
}
