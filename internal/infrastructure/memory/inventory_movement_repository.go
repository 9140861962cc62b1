package memory

import (
	"context"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo libro de movimientos en memoria (solo anexar).
type InventoryMovementRepo struct {
	s  *Store
	st *stage
}

// Create anexa un movimiento.
func (r *InventoryMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	if r.st != nil {
		r.st.movements = append(r.st.movements, cloneMovement(m))
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := cloneMovement(m)
	c.Seq = r.s.nextSeq()
	m.Seq = c.Seq
	r.s.movements = append(r.s.movements, c)
	return nil
}

// ListRecent devuelve hasta limit movimientos, el más reciente primero.
func (r *InventoryMovementRepo) ListRecent(_ context.Context, limit int) ([]*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	all := make([]*entity.InventoryMovement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		all = append(all, cloneMovement(m))
	}
	r.s.mu.RUnlock()

	newestFirst(all, func(m *entity.InventoryMovement) (int64, int64) {
		return m.CreatedAt.UnixNano(), m.Seq
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// ListByProduct devuelve los movimientos de un producto en orden de inserción.
func (r *InventoryMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	out := make([]*entity.InventoryMovement, 0)
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, cloneMovement(m))
		}
	}
	r.s.mu.RUnlock()
	if r.st != nil {
		for _, m := range r.st.movements {
			if m.ProductID == productID {
				out = append(out, cloneMovement(m))
			}
		}
	}
	return out, nil
}
