package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/koperasi-api/internal/application/catalog"
	"github.com/jhoicas/koperasi-api/internal/application/dto"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/infrastructure/memory"
)

// recordingNotifier guarda los avisos recibidos.
type recordingNotifier struct {
	mu       sync.Mutex
	products []entity.Product
}

func (n *recordingNotifier) NotifyLowStock(products []entity.Product) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.products = append(n.products, products...)
}

func (n *recordingNotifier) received() []entity.Product {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entity.Product(nil), n.products...)
}

// seedProduct da de alta un producto por el catálogo, con su movimiento de saldo inicial.
func seedProduct(t *testing.T, store *memory.Store, id, name string, price int64, stock, minStock int) {
	t.Helper()
	uc := catalog.NewProductUseCase(store, store.Products())
	_, err := uc.Upsert(context.Background(), "tester", dto.UpsertProductRequest{
		ID:        id,
		Name:      name,
		SellPrice: decimal.NewFromInt(price),
		BuyPrice:  decimal.NewFromInt(price / 2),
		Stock:     &stock,
		MinStock:  minStock,
	})
	require.NoError(t, err)
}

func stockOf(t *testing.T, store *memory.Store, id string) int {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}
