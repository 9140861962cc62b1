// Package app arma las dependencias compartidas por los binarios de cmd/.
package app

import (
	"context"
	"fmt"

	"github.com/jhoicas/koperasi-api/internal/application/inventory"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
	"github.com/jhoicas/koperasi-api/internal/infrastructure/memory"
	"github.com/jhoicas/koperasi-api/internal/infrastructure/postgres"
	"github.com/jhoicas/koperasi-api/pkg/config"
	"github.com/jhoicas/koperasi-api/pkg/logger"
)

// Store reúne los repositorios y el runner transaccional del driver elegido.
type Store struct {
	TxRunner      inventory.TxRunner
	Products      repository.ProductRepository
	Movements     repository.InventoryMovementRepository
	Transactions  repository.TransactionRepository
	Admins        repository.AdminRepository
	Notifications repository.NotificationRepository

	ping  func(ctx context.Context) error
	close func()
}

// Ping verifica el almacenamiento (health check).
func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

// Close libera conexiones.
func (s *Store) Close() { s.close() }

// OpenStore abre el almacenamiento según STORE_DRIVER. Con postgres aplica las migraciones
// si DB_AUTO_MIGRATE está activo.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case "memory":
		m := memory.New()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &Store{
			TxRunner:      m,
			Products:      m.Products(),
			Movements:     m.Movements(),
			Transactions:  m.Transactions(),
			Admins:        m.Admins(),
			Notifications: m.Notifications(),
			ping:          m.Ping,
			close:         m.Close,
		}, nil
	case "postgres":
		dsn := cfg.DB.ConnectionString()
		if cfg.Store.AutoMigrate {
			if err := postgres.Migrate(dsn, log); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return &Store{
			TxRunner:      postgres.NewTxRunner(pool),
			Products:      postgres.NewProductRepository(pool),
			Movements:     postgres.NewInventoryMovementRepository(pool),
			Transactions:  postgres.NewTransactionRepository(pool),
			Admins:        postgres.NewAdminRepository(pool),
			Notifications: postgres.NewNotificationRepository(pool),
			ping:          pool.Ping,
			close:         pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("store: driver desconocido %q", cfg.Store.Driver)
	}
}
