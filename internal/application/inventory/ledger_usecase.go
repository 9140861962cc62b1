package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/koperasi-api/internal/application/dto"
	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/inventory"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

// LedgerUseCase consultas sobre el libro de movimientos.
type LedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.InventoryMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.InventoryMovementRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo}
}

// ListMovements devuelve los 200 movimientos más recientes, el más nuevo primero.
func (uc *LedgerUseCase) ListMovements(ctx context.Context) ([]dto.MovementResponse, error) {
	movs, err := uc.movRepo.ListRecent(ctx, inventory.MovementListLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.ToMovementResponse(m))
	}
	return out, nil
}

// Reconcile compara, bajo el bloqueo del producto, su stock con la suma con signo de su libro.
func (uc *LedgerUseCase) Reconcile(ctx context.Context, productID string) (*dto.ReconcileResponse, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.ReconcileResponse
	err := uc.txRunner.Run(ctx, []string{productID}, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		_ repository.TransactionRepository,
	) error {
		p, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return inventory.ProductNotFound(productID)
		}
		movs, err := movRepo.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		balance := inventory.LedgerBalance(movs)
		out = &dto.ReconcileResponse{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Stock:         p.Stock,
			LedgerBalance: balance,
			Movements:     len(movs),
			Consistent:    balance == p.Stock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
