package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/koperasi-api/internal/application/notification"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/infrastructure/memory"
	"github.com/jhoicas/koperasi-api/pkg/logger"
)

func TestAlertDispatcher_PersisteEnSegundoPlano(t *testing.T) {
	store := memory.New()
	repo := store.Notifications()
	d := notification.NewAlertDispatcher(repo, logger.Nop(), 4)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	d.NotifyLowStock([]entity.Product{{ID: "PRD-1", Name: "Gula", Stock: 1, MinStock: 5}})

	require.Eventually(t, func() bool {
		list, _ := repo.ListRecent(context.Background(), 10)
		return len(list) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	list, _ := repo.ListRecent(context.Background(), 10)
	assert.Equal(t, "PRD-1", list[0].ProductID)
	assert.Equal(t, 1, list[0].Stock)
	assert.Equal(t, 5, list[0].MinStock)
}

func TestAlertDispatcher_ColaLlena_NoBloquea(t *testing.T) {
	store := memory.New()
	d := notification.NewAlertDispatcher(store.Notifications(), logger.Nop(), 1)

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.NotifyLowStock([]entity.Product{{ID: "PRD-1"}})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("NotifyLowStock bloqueó con la cola llena")
	}
}

func TestAlertDispatcher_VaciaAlCancelar(t *testing.T) {
	store := memory.New()
	d := notification.NewAlertDispatcher(store.Notifications(), logger.Nop(), 8)
	d.NotifyLowStock([]entity.Product{{ID: "PRD-1"}, {ID: "PRD-2"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Run(ctx))

	list, _ := store.Notifications().ListRecent(context.Background(), 10)
	assert.Len(t, list, 2)
}

// failingRepo simula un almacenamiento caído.
type failingRepo struct{}

func (failingRepo) Create(context.Context, *entity.Notification) error {
	return errors.New("almacenamiento no disponible")
}

func (failingRepo) ListRecent(context.Context, int) ([]*entity.Notification, error) {
	return nil, nil
}

func TestAlertDispatcher_ErrorDeAlmacenamiento_NoPropaga(t *testing.T) {
	d := notification.NewAlertDispatcher(failingRepo{}, logger.Nop(), 2)
	d.NotifyLowStock([]entity.Product{{ID: "PRD-1"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, d.Run(ctx))
}
