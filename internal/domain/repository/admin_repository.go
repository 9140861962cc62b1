package repository

import (
	"context"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
)

// AdminRepository define el puerto de persistencia para operadores.
type AdminRepository interface {
	// GetByUsername devuelve (nil, nil) si no existe.
	GetByUsername(ctx context.Context, username string) (*entity.Admin, error)
	// Upsert crea el operador o actualiza hash, rol y estado si ya existe.
	Upsert(ctx context.Context, admin *entity.Admin) error
}
