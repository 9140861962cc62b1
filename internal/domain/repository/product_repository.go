package repository

import (
	"context"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// List devuelve el catálogo en orden de inserción.
	List(ctx context.Context) ([]*entity.Product, error)
	// ListLowStock devuelve los productos con stock <= stock mínimo.
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
}
