package memory

import (
	"context"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo operadores en memoria.
type AdminRepo struct {
	s *Store
}

// GetByUsername devuelve una copia del operador o (nil, nil).
func (r *AdminRepo) GetByUsername(_ context.Context, username string) (*entity.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if a, ok := r.s.admins[username]; ok {
		c := *a
		return &c, nil
	}
	return nil, nil
}

// Upsert crea o actualiza; conserva CreatedAt del registro existente.
func (r *AdminRepo) Upsert(_ context.Context, a *entity.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *a
	if prev, ok := r.s.admins[a.Username]; ok {
		c.CreatedAt = prev.CreatedAt
		a.CreatedAt = prev.CreatedAt
	}
	r.s.admins[a.Username] = &c
	return nil
}
