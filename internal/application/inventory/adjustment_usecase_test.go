package inventory_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/koperasi-api/internal/application/inventory"
	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateAdjustment_EntradaInvalida(t *testing.T) {
	store := memory.New()
	uc := appinventory.NewAdjustmentUseCase(store, nil)
	ctx := context.Background()

	cases := map[string]appinventory.AdjustmentInput{
		"sin producto":     {Type: "IN", Qty: 1},
		"sin tipo":         {ProductID: "PRD-1", Qty: 1},
		"tipo desconocido": {ProductID: "PRD-1", Type: "MOVE", Qty: 1},
		"qty cero":         {ProductID: "PRD-1", Type: "IN", Qty: 0},
		"qty negativa":     {ProductID: "PRD-1", Type: "OUT", Qty: -2},
	}
	for name, in := range cases {
		_, err := uc.CreateAdjustment(ctx, in)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), name)
	}
}

func TestCreateAdjustment_EntradaEnorme_NoDesbordaElStock(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "PRD-1", "Minyak 1L", 18000, 5, 0)
	uc := appinventory.NewAdjustmentUseCase(store, nil)
	ctx := context.Background()

	before, _ := store.Movements().ListByProduct(ctx, "PRD-1")

	for _, qty := range []int{math.MaxInt, math.MaxInt32 + 1, math.MaxInt32 - 4} {
		_, err := uc.CreateAdjustment(ctx, appinventory.AdjustmentInput{
			ProductID: "PRD-1", Type: "IN", Qty: qty, Actor: "ani",
		})
		require.Error(t, err, "qty %d", qty)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "qty %d", qty)
	}

	assert.Equal(t, 5, stockOf(t, store, "PRD-1"))
	after, _ := store.Movements().ListByProduct(ctx, "PRD-1")
	assert.Len(t, after, len(before))
	for _, m := range after {
		assert.GreaterOrEqual(t, m.BalanceAfter, 0)
	}
}

func TestCreateAdjustment_ProductoInexistente(t *testing.T) {
	store := memory.New()
	uc := appinventory.NewAdjustmentUseCase(store, nil)

	_, err := uc.CreateAdjustment(context.Background(), appinventory.AdjustmentInput{
		ProductID: "PRD-X", Type: "IN", Qty: 1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "PRD-X")
}

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateAdjustment_SalidaMayorAlStock_NoCambiaNada(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "PRD-1", "Gula 1kg", 15000, 3, 0)
	uc := appinventory.NewAdjustmentUseCase(store, nil)
	ctx := context.Background()

	before, _ := store.Movements().ListByProduct(ctx, "PRD-1")

	_, err := uc.CreateAdjustment(ctx, appinventory.AdjustmentInput{
		ProductID: "PRD-1", Type: "OUT", Qty: 5, Actor: "ani",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Contains(t, err.Error(), "Gula 1kg")

	assert.Equal(t, 3, stockOf(t, store, "PRD-1"))
	after, _ := store.Movements().ListByProduct(ctx, "PRD-1")
	assert.Len(t, after, len(before), "no debe escribirse ningún movimiento")
}

func TestCreateAdjustment_TipoMinusculas_UnMovimiento(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "PRD-1", "Gula 1kg", 15000, 3, 0)
	uc := appinventory.NewAdjustmentUseCase(store, nil)

	mov, err := uc.CreateAdjustment(context.Background(), appinventory.AdjustmentInput{
		ProductID: "PRD-1", Type: "in", Qty: 4, Actor: "ani",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, 4, mov.Quantity)
	assert.Equal(t, 7, mov.BalanceAfter)
	assert.Equal(t, entity.RefNone, mov.RefID)
	assert.Equal(t, appinventory.DefaultAdjustmentNote, mov.Note)
	assert.Equal(t, "ani", mov.Actor)
	assert.Equal(t, 7, stockOf(t, store, "PRD-1"))
}

func TestCreateAdjustment_EntradaConCosto_RecalculaPromedio(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "PRD-1", "Minyak 1L", 2000, 10, 0) // buy price 1000
	uc := appinventory.NewAdjustmentUseCase(store, nil)
	cost := decimal.NewFromInt(1200)

	_, err := uc.CreateAdjustment(context.Background(), appinventory.AdjustmentInput{
		ProductID: "PRD-1", Type: "IN", Qty: 10, UnitCost: &cost,
	})
	require.NoError(t, err)

	p, _ := store.Products().GetByID(context.Background(), "PRD-1")
	assert.True(t, p.BuyPrice.Equal(decimal.NewFromInt(1100)), p.BuyPrice.String())
}

func TestCreateAdjustment_CostoEnSalida_Rechazado(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "PRD-1", "Minyak 1L", 2000, 10, 0)
	uc := appinventory.NewAdjustmentUseCase(store, nil)
	cost := decimal.NewFromInt(1200)

	_, err := uc.CreateAdjustment(context.Background(), appinventory.AdjustmentInput{
		ProductID: "PRD-1", Type: "OUT", Qty: 1, UnitCost: &cost,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreateAdjustment_SalidaDejaStockBajo_Notifica(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "PRD-1", "Teh 25s", 8000, 6, 5)
	notifier := &recordingNotifier{}
	uc := appinventory.NewAdjustmentUseCase(store, notifier)

	_, err := uc.CreateAdjustment(context.Background(), appinventory.AdjustmentInput{
		ProductID: "PRD-1", Type: "OUT", Qty: 2,
	})
	require.NoError(t, err)

	got := notifier.received()
	require.Len(t, got, 1)
	assert.Equal(t, "PRD-1", got[0].ID)
	assert.Equal(t, 4, got[0].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateAdjustment_Concurrentes_SoloUnaCabe(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "PRD-1", "Beras 5kg", 65000, 10, 0)
	uc := appinventory.NewAdjustmentUseCase(store, nil)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateAdjustment(context.Background(), appinventory.AdjustmentInput{
				ProductID: "PRD-1", Type: "OUT", Qty: 6,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 4, stockOf(t, store, "PRD-1"))
}

func TestCreateAdjustment_MuchasConcurrentes_StockNuncaNegativo(t *testing.T) {
	store := memory.New()
	seedProduct(t, store, "PRD-1", "Beras 5kg", 65000, 20, 0)
	uc := appinventory.NewAdjustmentUseCase(store, nil)
	ledger := appinventory.NewLedgerUseCase(store, store.Movements())

	var wg sync.WaitGroup
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			typ := "OUT"
			if i%3 == 0 {
				typ = "IN"
			}
			_, _ = uc.CreateAdjustment(context.Background(), appinventory.AdjustmentInput{
				ProductID: "PRD-1", Type: typ, Qty: 1 + i%4,
			})
		}(i)
	}
	wg.Wait()

	assert.GreaterOrEqual(t, stockOf(t, store, "PRD-1"), 0)
	rep, err := ledger.Reconcile(context.Background(), "PRD-1")
	require.NoError(t, err)
	assert.True(t, rep.Consistent, "stock %d, libro %d", rep.Stock, rep.LedgerBalance)
}
