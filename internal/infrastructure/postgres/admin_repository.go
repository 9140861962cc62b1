package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo operadores sobre PostgreSQL.
type AdminRepo struct {
	q Querier
}

// NewAdminRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdminRepository(q Querier) *AdminRepo {
	return &AdminRepo{q: q}
}

// GetByUsername obtiene un operador o (nil, nil).
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	query := `
		SELECT username, password_hash, role, is_active, created_at, updated_at
		FROM admins WHERE username = $1`
	var a entity.Admin
	err := r.q.QueryRow(ctx, query, username).Scan(
		&a.Username, &a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}

// Upsert crea el operador o actualiza hash, rol y estado; created_at se conserva.
func (r *AdminRepo) Upsert(ctx context.Context, a *entity.Admin) error {
	query := `
		INSERT INTO admins (username, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    role          = EXCLUDED.role,
		    is_active     = EXCLUDED.is_active,
		    updated_at    = EXCLUDED.updated_at
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query, a.Username, a.PasswordHash, a.Role, a.IsActive, a.CreatedAt, a.UpdatedAt).
		Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert admin: %w", err)
	}
	return nil
}
