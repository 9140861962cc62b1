package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/koperasi-api/internal/application/dto"
	"github.com/jhoicas/koperasi-api/internal/application/sales"
	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/infrastructure/memory"
)

func TestListTransactions_MasNuevaPrimeroConLineas(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "A", 1000, 500, 0)
	create := sales.NewCreateTransactionUseCase(store, nil)
	ctx := context.Background()

	var last string
	for i := 0; i < 105; i++ {
		res, err := create.CreateTransaction(ctx, "kasir1", dto.CreateTransactionRequest{
			Items: []dto.SaleLineRequest{{ProductID: "A", Qty: 1}},
		})
		require.NoError(t, err)
		last = res.ID
	}

	list, err := sales.NewQueryUseCase(store.Transactions()).ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 100)
	assert.Equal(t, last, list[0].ID)
	assert.Len(t, list[0].Items, 1)
}

func TestGetTransaction(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "A", 1000, 5, 0)
	ctx := context.Background()
	res, err := sales.NewCreateTransactionUseCase(store, nil).CreateTransaction(ctx, "kasir1", dto.CreateTransactionRequest{
		Items: []dto.SaleLineRequest{{ProductID: "A", Qty: 1}},
	})
	require.NoError(t, err)

	q := sales.NewQueryUseCase(store.Transactions())
	got, err := q.GetTransaction(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)

	_, err = q.GetTransaction(ctx, "TRX-NOPE")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// fakeGenerator devuelve un PDF mínimo y registra la venta recibida.
type fakeGenerator struct {
	got  *entity.Transaction
	shop sales.ShopInfo
}

func (g *fakeGenerator) GenerateReceiptPDF(_ context.Context, shop sales.ShopInfo, tx *entity.Transaction) ([]byte, error) {
	g.got = tx
	g.shop = shop
	return []byte("%PDF-1.4"), nil
}

func TestDownloadReceiptPDF(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "A", 1000, 5, 0)
	ctx := context.Background()
	res, err := sales.NewCreateTransactionUseCase(store, nil).CreateTransaction(ctx, "kasir1", dto.CreateTransactionRequest{
		Items: []dto.SaleLineRequest{{ProductID: "A", Qty: 1}},
	})
	require.NoError(t, err)

	gen := &fakeGenerator{}
	uc := sales.NewReceiptUseCase(store.Transactions(), gen, sales.ShopInfo{Name: "Koperasi Maju"})
	pdf, filename, err := uc.DownloadReceiptPDF(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "recibo_"+res.ID+".pdf", filename)
	assert.Equal(t, "%PDF-1.4", string(pdf))
	assert.Equal(t, res.ID, gen.got.ID)
	assert.Equal(t, "Koperasi Maju", gen.shop.Name)

	_, _, err = uc.DownloadReceiptPDF(ctx, "TRX-NOPE")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
