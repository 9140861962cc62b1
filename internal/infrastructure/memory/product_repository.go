package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. Con st != nil escribe en el área de la transacción.
type ProductRepo struct {
	s  *Store
	st *stage
}

// Create inserta un producto nuevo.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	if r.st != nil {
		if _, ok := r.st.products[p.ID]; ok {
			return fmt.Errorf("%w: producto %s", domain.ErrDuplicate, p.ID)
		}
		r.st.products[p.ID] = cloneProduct(p)
		r.st.created = append(r.st.created, p.ID)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return fmt.Errorf("%w: producto %s", domain.ErrDuplicate, p.ID)
	}
	r.s.products[p.ID] = cloneProduct(p)
	r.s.productOrder = append(r.s.productOrder, p.ID)
	return nil
}

// GetByID devuelve una copia del producto o (nil, nil).
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if r.st != nil {
		if p, ok := r.st.products[id]; ok {
			return cloneProduct(p), nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.products[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, nil
}

// Update reemplaza un producto existente.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	if r.st != nil {
		_, staged := r.st.products[p.ID]
		r.s.mu.RLock()
		_, stored := r.s.products[p.ID]
		r.s.mu.RUnlock()
		if !staged && !stored {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, p.ID)
		}
		r.st.products[p.ID] = cloneProduct(p)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, p.ID)
	}
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

// List devuelve el catálogo en orden de inserción.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	out := make([]*entity.Product, 0, len(r.s.productOrder))
	for _, id := range r.s.productOrder {
		p := r.s.products[id]
		if r.st != nil {
			if staged, ok := r.st.products[id]; ok {
				p = staged
			}
		}
		out = append(out, cloneProduct(p))
	}
	r.s.mu.RUnlock()
	if r.st != nil {
		for _, id := range r.st.created {
			out = append(out, cloneProduct(r.st.products[id]))
		}
	}
	return out, nil
}

// ListLowStock productos con stock <= mínimo, en orden de inserción.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0)
	for _, p := range all {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}
