// Package memory implementa los puertos de persistencia en memoria del proceso.
// Sirve para desarrollo local y como doble de pruebas con la misma semántica transaccional
// que PostgreSQL: bloqueo por producto y escritura todo-o-nada.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/pkg/keylock"
)

// Store almacenamiento en memoria. El zero value no es usable; usar New.
type Store struct {
	mu    sync.RWMutex
	locks *keylock.KeyLock

	seq           int64
	products      map[string]*entity.Product
	productOrder  []string
	movements     []*entity.InventoryMovement
	transactions  map[string]*entity.Transaction
	txOrder       []string
	txSeq         map[string]int64
	admins        map[string]*entity.Admin
	notifications []*entity.Notification
}

// New crea un almacenamiento vacío.
func New() *Store {
	return &Store{
		locks:        keylock.New(),
		products:     make(map[string]*entity.Product),
		transactions: make(map[string]*entity.Transaction),
		txSeq:        make(map[string]int64),
		admins:       make(map[string]*entity.Admin),
	}
}

// Ping siempre responde; existe para el health check.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close no libera nada; existe por simetría con el pool de PostgreSQL.
func (s *Store) Close() {}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Movements repositorio del libro fuera de transacción.
func (s *Store) Movements() *InventoryMovementRepo { return &InventoryMovementRepo{s: s} }

// Transactions repositorio de ventas fuera de transacción.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }

// Admins repositorio de operadores.
func (s *Store) Admins() *AdminRepo { return &AdminRepo{s: s} }

// Notifications repositorio de avisos.
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s: s} }

// nextSeq debe llamarse con s.mu tomado en escritura.
func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneMovement(m *entity.InventoryMovement) *entity.InventoryMovement {
	c := *m
	return &c
}

func cloneTransaction(t *entity.Transaction) *entity.Transaction {
	c := *t
	c.Items = append([]entity.TransactionItem(nil), t.Items...)
	return &c
}

// newestFirst ordena por fecha descendente y, a igual fecha, por inserción descendente.
func newestFirst[T any](items []T, at func(T) (int64, int64)) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, si := at(items[i])
		tj, sj := at(items[j])
		if ti != tj {
			return ti > tj
		}
		return si > sj
	})
}
