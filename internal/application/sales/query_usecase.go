package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/koperasi-api/internal/application/dto"
	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/inventory"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

// QueryUseCase consultas de ventas registradas.
type QueryUseCase struct {
	txRepo repository.TransactionRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(txRepo repository.TransactionRepository) *QueryUseCase {
	return &QueryUseCase{txRepo: txRepo}
}

// ListTransactions devuelve las 100 ventas más recientes con sus líneas, la más nueva primero.
func (uc *QueryUseCase) ListTransactions(ctx context.Context) ([]dto.TransactionResponse, error) {
	list, err := uc.txRepo.ListRecent(ctx, inventory.TransactionListLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.ToTransactionResponse(t))
	}
	return out, nil
}

// GetTransaction devuelve una venta; ErrNotFound si no existe.
func (uc *QueryUseCase) GetTransaction(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	t, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	out := dto.ToTransactionResponse(t)
	return &out, nil
}
