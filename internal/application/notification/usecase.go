package notification

import (
	"context"
	"time"

	"github.com/jhoicas/koperasi-api/internal/application/dto"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/inventory"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

// UseCase consulta y genera avisos de stock bajo.
type UseCase struct {
	repo        repository.NotificationRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.NotificationRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{repo: repo, productRepo: productRepo}
}

// List devuelve los 200 avisos más recientes.
func (uc *UseCase) List(ctx context.Context) ([]dto.NotificationResponse, error) {
	list, err := uc.repo.ListRecent(ctx, inventory.NotificationListLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.ToNotificationResponse(n))
	}
	return out, nil
}

// ScanLowStock registra un aviso por cada producto que está hoy en o bajo su mínimo.
func (uc *UseCase) ScanLowStock(ctx context.Context) ([]dto.NotificationResponse, error) {
	products, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	ids := inventory.NewIDGenerator(now)
	out := make([]dto.NotificationResponse, 0, len(products))
	for _, p := range products {
		n := &entity.Notification{
			ID:          ids.Next(inventory.PrefixNotification),
			CreatedAt:   now,
			ProductID:   p.ID,
			ProductName: p.Name,
			Stock:       p.Stock,
			MinStock:    p.MinStock,
		}
		if err := uc.repo.Create(ctx, n); err != nil {
			return nil, err
		}
		out = append(out, dto.ToNotificationResponse(n))
	}
	return out, nil
}
