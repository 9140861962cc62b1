package memory

import (
	"context"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo avisos de stock bajo en memoria.
type NotificationRepo struct {
	s *Store
}

// Create anexa un aviso.
func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *n
	c.Seq = r.s.nextSeq()
	n.Seq = c.Seq
	r.s.notifications = append(r.s.notifications, &c)
	return nil
}

// ListRecent devuelve hasta limit avisos, el más reciente primero.
func (r *NotificationRepo) ListRecent(_ context.Context, limit int) ([]*entity.Notification, error) {
	r.s.mu.RLock()
	all := make([]*entity.Notification, 0, len(r.s.notifications))
	for _, n := range r.s.notifications {
		c := *n
		all = append(all, &c)
	}
	r.s.mu.RUnlock()

	newestFirst(all, func(n *entity.Notification) (int64, int64) {
		return n.CreatedAt.UnixNano(), n.Seq
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
