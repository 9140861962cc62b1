package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/koperasi-api/internal/application/dto"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición para los productos en o bajo su stock mínimo.
// Prioriza por margen y por unidades vendidas en los últimos 90 días.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo, movRepo: movRepo}
}

// GenerateReplenishmentList devuelve los productos con stock bajo, la cantidad sugerida de pedido
// y un ranking de prioridad (1 = más urgente).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	since := time.Now().AddDate(0, 0, -90)
	hundred := decimal.NewFromInt(100)

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(products))
	for _, p := range products {
		// ceil(min * 1.5)
		ideal := (p.MinStock*3 + 1) / 2
		suggested := ideal - p.Stock
		if suggested < 0 {
			suggested = 0
		}

		var margin decimal.Decimal
		if p.SellPrice.GreaterThan(decimal.Zero) {
			margin = p.SellPrice.Sub(p.BuyPrice).Div(p.SellPrice).Mul(hundred).Round(2)
		}

		sold, err := uc.unitsSoldSince(ctx, p.ID, since)
		if err != nil {
			return nil, err
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			ProductName:        p.Name,
			CurrentStock:       p.Stock,
			MinStock:           p.MinStock,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			UnitCost:           p.BuyPrice,
			EstimatedOrderCost: p.BuyPrice.Mul(decimal.NewFromInt(int64(suggested))),
			GrossMarginPct:     margin,
			UnitsSoldLast90d:   sold,
		})
	}

	// Mayor margen primero, luego mayor volumen de ventas y por último mayor déficit.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		if a.UnitsSoldLast90d != b.UnitsSoldLast90d {
			return a.UnitsSoldLast90d > b.UnitsSoldLast90d
		}
		return a.MinStock-a.CurrentStock > b.MinStock-b.CurrentStock
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// unitsSoldSince suma las salidas por venta (RefID distinto de "-") desde la fecha dada.
func (uc *ReplenishmentUseCase) unitsSoldSince(ctx context.Context, productID string, since time.Time) (int, error) {
	movs, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, m := range movs {
		if m.Type == entity.MovementTypeOUT && m.RefID != entity.RefNone && !m.CreatedAt.Before(since) {
			total += m.Quantity
		}
	}
	return total, nil
}
