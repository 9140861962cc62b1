package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/koperasi-api/internal/application/inventory"
	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// stage acumula las escrituras de una transacción hasta el commit.
type stage struct {
	products     map[string]*entity.Product
	created      []string
	movements    []*entity.InventoryMovement
	transactions []*entity.Transaction
}

func newStage() *stage {
	return &stage{products: make(map[string]*entity.Product)}
}

// Run bloquea los productos (ordenados, sin duplicados), ejecuta fn con repos que escriben en un
// área intermedia y, si fn no falla, aplica todo de una vez. Con error no se aplica nada.
func (s *Store) Run(ctx context.Context, productIDs []string, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	txRepo repository.TransactionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	unlock := s.locks.LockAll(productIDs)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	st := newStage()
	if err := fn(
		&ProductRepo{s: s, st: st},
		&InventoryMovementRepo{s: s, st: st},
		&TransactionRepo{s: s, st: st},
	); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.commit(st)
}

func (s *Store) commit(st *stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range st.created {
		if _, exists := s.products[id]; exists {
			return fmt.Errorf("%w: producto %s", domain.ErrDuplicate, id)
		}
	}
	for _, t := range st.transactions {
		if _, exists := s.transactions[t.ID]; exists {
			return fmt.Errorf("%w: venta %s", domain.ErrDuplicate, t.ID)
		}
	}

	for _, id := range st.created {
		s.productOrder = append(s.productOrder, id)
	}
	for id, p := range st.products {
		s.products[id] = p
	}
	for _, m := range st.movements {
		m.Seq = s.nextSeq()
		s.movements = append(s.movements, m)
	}
	for _, t := range st.transactions {
		s.transactions[t.ID] = t
		s.txOrder = append(s.txOrder, t.ID)
		s.txSeq[t.ID] = s.nextSeq()
	}
	return nil
}
