package sales_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/koperasi-api/internal/application/catalog"
	"github.com/jhoicas/koperasi-api/internal/application/dto"
	appinventory "github.com/jhoicas/koperasi-api/internal/application/inventory"
	"github.com/jhoicas/koperasi-api/internal/application/sales"
	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type recordingNotifier struct {
	mu       sync.Mutex
	products []entity.Product
}

func (n *recordingNotifier) NotifyLowStock(products []entity.Product) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.products = append(n.products, products...)
}

func seedProduct(t *testing.T, store *memory.Store, id string, price int64, stock, minStock int) {
	t.Helper()
	_, err := catalog.NewProductUseCase(store, store.Products()).Upsert(context.Background(), "tester", dto.UpsertProductRequest{
		ID:        id,
		Name:      "Producto " + id,
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

func saleMovements(t *testing.T, store *memory.Store, productID string) []*entity.InventoryMovement {
	t.Helper()
	all, err := store.Movements().ListByProduct(context.Background(), productID)
	require.NoError(t, err)
	var out []*entity.InventoryMovement
	for _, m := range all {
		if m.RefID != entity.RefNone {
			out = append(out, m)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta exitosa
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTransaction_VentaSimple(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "A", 1000, 5, 0)
	uc := sales.NewCreateTransactionUseCase(store, nil)

	res, err := uc.CreateTransaction(context.Background(), "kasir1", dto.CreateTransactionRequest{
		Items: []dto.SaleLineRequest{{ProductID: "A", Qty: 2}},
	})
	require.NoError(t, err)

	assert.True(t, res.Total.Equal(decimal.NewFromInt(2000)), res.Total.String())
	assert.Equal(t, "kasir1", res.Cashier)
	assert.Equal(t, entity.MemberNone, res.MemberName)
	assert.Equal(t, entity.PaymentCash, res.PaymentMethod)
	require.Len(t, res.Items, 1)
	assert.True(t, res.Items[0].Price.Equal(decimal.NewFromInt(1000)))
	assert.True(t, res.Items[0].Subtotal.Equal(decimal.NewFromInt(2000)))

	assert.Equal(t, 3, stockOf(t, store, "A"))
	movs := saleMovements(t, store, "A")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.Equal(t, 2, movs[0].Quantity)
	assert.Equal(t, 3, movs[0].BalanceAfter)
	assert.Equal(t, res.ID, movs[0].RefID)
	assert.Equal(t, "Venta "+res.ID, movs[0].Note)
	assert.Equal(t, "kasir1", movs[0].Actor)

	saved, err := store.Transactions().GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Len(t, saved.Items, 1)
}

func TestCreateTransaction_VariasLineas_TotalEsSumaDeSubtotales(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "A", 1500, 10, 0)
	seedProduct(t, store, "B", 2750, 10, 0)
	uc := sales.NewCreateTransactionUseCase(store, nil)

	res, err := uc.CreateTransaction(context.Background(), "kasir1", dto.CreateTransactionRequest{
		Items: []dto.SaleLineRequest{
			{ProductID: "B", Qty: 3},
			{ProductID: "A", Qty: 1},
			{ProductID: "B", Qty: 2},
		},
		MemberName:    "Siti",
		PaymentMethod: "Transfer",
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, it := range res.Items {
		assert.True(t, it.Subtotal.Equal(it.Price.Mul(decimal.NewFromInt(int64(it.Qty)))))
		sum = sum.Add(it.Subtotal)
	}
	assert.True(t, res.Total.Equal(sum))
	assert.True(t, res.Total.Equal(decimal.NewFromInt(15250)), res.Total.String())
	assert.Equal(t, "Siti", res.MemberName)
	assert.Equal(t, entity.PaymentTransfer, res.PaymentMethod)

	assert.Equal(t, 5, stockOf(t, store, "B"))
	assert.Equal(t, 9, stockOf(t, store, "A"))

	movsB := saleMovements(t, store, "B")
	require.Len(t, movsB, 2)
	assert.Equal(t, 7, movsB[0].BalanceAfter, "saldo acumulado tras la primera línea")
	assert.Equal(t, 5, movsB[1].BalanceAfter)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazos sin efectos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTransaction_LineasDuplicadasNoSobregiran(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "A", 1000, 5, 0)
	uc := sales.NewCreateTransactionUseCase(store, nil)

	_, err := uc.CreateTransaction(context.Background(), "kasir1", dto.CreateTransactionRequest{
		Items: []dto.SaleLineRequest{{ProductID: "A", Qty: 3}, {ProductID: "A", Qty: 3}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Contains(t, err.Error(), "Producto A")

	assert.Equal(t, 5, stockOf(t, store, "A"))
	assert.Empty(t, saleMovements(t, store, "A"))
	list, _ := store.Transactions().ListRecent(context.Background(), 10)
	assert.Empty(t, list)
}

func TestCreateTransaction_SegundaLineaSinStock_NoAplicaLaPrimera(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "A", 1000, 5, 0)
	seedProduct(t, store, "B", 1000, 1, 0)
	uc := sales.NewCreateTransactionUseCase(store, nil)

	_, err := uc.CreateTransaction(context.Background(), "kasir1", dto.CreateTransactionRequest{
		Items: []dto.SaleLineRequest{{ProductID: "A", Qty: 2}, {ProductID: "B", Qty: 2}},
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 5, stockOf(t, store, "A"))
	assert.Equal(t, 1, stockOf(t, store, "B"))
}

func TestCreateTransaction_Validacion(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "A", 1000, 5, 0)
	uc := sales.NewCreateTransactionUseCase(store, nil)
	ctx := context.Background()

	_, err := uc.CreateTransaction(ctx, "kasir1", dto.CreateTransactionRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "sin líneas")

	_, err = uc.CreateTransaction(ctx, "kasir1", dto.CreateTransactionRequest{
		Items: []dto.SaleLineRequest{{ProductID: "", Qty: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "sin producto")

	_, err = uc.CreateTransaction(ctx, "kasir1", dto.CreateTransactionRequest{
		Items: []dto.SaleLineRequest{{ProductID: "A", Qty: 0}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "qty cero")

	_, err = uc.CreateTransaction(ctx, "kasir1", dto.CreateTransactionRequest{
		Items: []dto.SaleLineRequest{{ProductID: "A", Qty: math.MaxInt}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "qty fuera de rango")

	_, err = uc.CreateTransaction(ctx, "kasir1", dto.CreateTransactionRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "A", Qty: 1}},
		PaymentMethod: "bitcoin",
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "método de pago")

	_, err = uc.CreateTransaction(ctx, "kasir1", dto.CreateTransactionRequest{
		Items: []dto.SaleLineRequest{{ProductID: "NOPE", Qty: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "NOPE")

	assert.Equal(t, 5, stockOf(t, store, "A"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Aviso de stock bajo y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTransaction_StockBajo_NotificaTrasCommit(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "A", 1000, 5, 3)
	seedProduct(t, store, "B", 1000, 50, 3)
	notifier := &recordingNotifier{}
	uc := sales.NewCreateTransactionUseCase(store, notifier)

	_, err := uc.CreateTransaction(context.Background(), "kasir1", dto.CreateTransactionRequest{
		Items: []dto.SaleLineRequest{{ProductID: "A", Qty: 2}, {ProductID: "B", Qty: 1}},
	})
	require.NoError(t, err)

	require.Len(t, notifier.products, 1)
	assert.Equal(t, "A", notifier.products[0].ID)
	assert.Equal(t, 3, notifier.products[0].Stock)
}

func TestCreateTransaction_Concurrentes_StockNuncaNegativo(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "A", 1000, 10, 0)
	seedProduct(t, store, "B", 1000, 10, 0)
	uc := sales.NewCreateTransactionUseCase(store, nil)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			items := []dto.SaleLineRequest{{ProductID: "A", Qty: 1}, {ProductID: "B", Qty: 1}}
			if i%2 == 0 {
				items[0], items[1] = items[1], items[0]
			}
			if _, err := uc.CreateTransaction(context.Background(), "kasir", dto.CreateTransactionRequest{Items: items}); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 0, stockOf(t, store, "A"))
	assert.Equal(t, 0, stockOf(t, store, "B"))

	ledger := appinventory.NewLedgerUseCase(store, store.Movements())
	for _, id := range []string{"A", "B"} {
		rep, err := ledger.Reconcile(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, rep.Consistent, id)
	}
}

func TestNormalizePaymentMethod(t *testing.T) {
	for in, want := range map[string]string{"": "cash", "CASH": "cash", " transfer ": "transfer", "Other": "other"} {
		got, err := sales.NormalizePaymentMethod(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := sales.NormalizePaymentMethod("qris")
	assert.Error(t, err)
}
