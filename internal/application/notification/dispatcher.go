package notification

import (
	"context"
	"time"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/inventory"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
	"github.com/jhoicas/koperasi-api/pkg/logger"
)

// AlertDispatcher recibe avisos de stock bajo después del commit y los persiste en segundo plano.
// NotifyLowStock nunca bloquea: si la cola está llena el aviso se descarta con un warning.
type AlertDispatcher struct {
	repo  repository.NotificationRepository
	log   *logger.Logger
	queue chan []entity.Product
}

// NewAlertDispatcher construye el despachador con una cola de tamaño buffer.
func NewAlertDispatcher(repo repository.NotificationRepository, log *logger.Logger, buffer int) *AlertDispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AlertDispatcher{repo: repo, log: log.Component("low_stock"), queue: make(chan []entity.Product, buffer)}
}

// NotifyLowStock encola los productos; implementa inventory.LowStockNotifier.
func (d *AlertDispatcher) NotifyLowStock(products []entity.Product) {
	if len(products) == 0 {
		return
	}
	select {
	case d.queue <- products:
	default:
		d.log.Warn().Int("products", len(products)).Msg("cola de avisos llena, aviso descartado")
	}
}

// Run procesa la cola hasta que ctx se cancele; al salir vacía lo que quede pendiente.
func (d *AlertDispatcher) Run(ctx context.Context) error {
	for {
		select {
		case batch := <-d.queue:
			d.persist(ctx, batch)
		case <-ctx.Done():
			d.drain()
			return nil
		}
	}
}

func (d *AlertDispatcher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case batch := <-d.queue:
			d.persist(ctx, batch)
		default:
			return
		}
	}
}

func (d *AlertDispatcher) persist(ctx context.Context, batch []entity.Product) {
	now := time.Now()
	ids := inventory.NewIDGenerator(now)
	for _, p := range batch {
		n := &entity.Notification{
			ID:          ids.Next(inventory.PrefixNotification),
			CreatedAt:   now,
			ProductID:   p.ID,
			ProductName: p.Name,
			Stock:       p.Stock,
			MinStock:    p.MinStock,
		}
		if err := d.repo.Create(ctx, n); err != nil {
			d.log.Error().Err(err).Str("product_id", p.ID).Msg("no se pudo guardar el aviso de stock bajo")
			continue
		}
		d.log.Info().Str("product_id", p.ID).Int("stock", p.Stock).Int("min_stock", p.MinStock).Msg("stock bajo")
	}
}
