package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ventas en memoria.
type TransactionRepo struct {
	s  *Store
	st *stage
}

// Create guarda la venta con sus líneas.
func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	if r.st != nil {
		r.st.transactions = append(r.st.transactions, cloneTransaction(t))
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions[t.ID]; ok {
		return fmt.Errorf("%w: venta %s", domain.ErrDuplicate, t.ID)
	}
	r.s.transactions[t.ID] = cloneTransaction(t)
	r.s.txOrder = append(r.s.txOrder, t.ID)
	r.s.txSeq[t.ID] = r.s.nextSeq()
	return nil
}

// GetByID devuelve la venta o (nil, nil).
func (r *TransactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if t, ok := r.s.transactions[id]; ok {
		return cloneTransaction(t), nil
	}
	return nil, nil
}

// ListRecent devuelve hasta limit ventas, la más reciente primero.
func (r *TransactionRepo) ListRecent(_ context.Context, limit int) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	all := make([]*entity.Transaction, 0, len(r.s.txOrder))
	seqs := make(map[*entity.Transaction]int64, len(r.s.txOrder))
	for _, id := range r.s.txOrder {
		c := cloneTransaction(r.s.transactions[id])
		seqs[c] = r.s.txSeq[id]
		all = append(all, c)
	}
	r.s.mu.RUnlock()

	newestFirst(all, func(t *entity.Transaction) (int64, int64) {
		return t.CreatedAt.UnixNano(), seqs[t]
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
