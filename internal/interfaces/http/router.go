package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/koperasi-api/internal/application/auth"
	"github.com/jhoicas/koperasi-api/internal/application/catalog"
	"github.com/jhoicas/koperasi-api/internal/application/inventory"
	"github.com/jhoicas/koperasi-api/internal/application/notification"
	"github.com/jhoicas/koperasi-api/internal/application/sales"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProductUC       *catalog.ProductUseCase
	AdjustmentUC    *inventory.AdjustmentUseCase
	LedgerUC        *inventory.LedgerUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	CreateTxUC      *sales.CreateTransactionUseCase
	QueryTxUC       *sales.QueryUseCase
	ReceiptUC       *sales.ReceiptUseCase
	NotificationUC  *notification.UseCase
	Store           Pinger
	LoginLimiter    *IPRateLimiter
	JWTSecret       string
	Log             *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	health := Health(deps.Store)
	app.Get("/health", health)

	api := app.Group("/api")
	api.Get("/health", health)

	// Auth (público, limitado por IP)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	loginChain := []fiber.Handler{authHandler.Login}
	if deps.LoginLimiter != nil {
		loginChain = append([]fiber.Handler{deps.LoginLimiter.Middleware()}, loginChain...)
	}
	api.Post("/auth/login", loginChain...)
	api.Post("/login", loginChain...)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyOperator := RequireRole(entity.RoleAdmin, entity.RoleCajero)
	adminOnly := RequireRole(entity.RoleAdmin)

	productHandler := NewProductHandler(deps.ProductUC, log)
	protected.Get("/products", anyOperator, productHandler.List)
	protected.Post("/products", adminOnly, productHandler.Upsert)
	protected.Get("/products/:id", anyOperator, productHandler.GetByID)

	inventoryHandler := NewInventoryHandler(deps.AdjustmentUC, deps.LedgerUC, deps.ReplenishmentUC, log)
	protected.Get("/movements", anyOperator, inventoryHandler.ListMovements)
	protected.Post("/stock-adjustments", adminOnly, inventoryHandler.CreateAdjustment)
	protected.Get("/inventory/reconcile/:product_id", adminOnly, inventoryHandler.Reconcile)
	protected.Get("/inventory/replenishment", adminOnly, inventoryHandler.GetReplenishmentList)

	txHandler := NewTransactionHandler(deps.CreateTxUC, deps.QueryTxUC, deps.ReceiptUC, log)
	protected.Get("/transactions", anyOperator, txHandler.List)
	protected.Post("/transactions", anyOperator, txHandler.Create)
	protected.Get("/transactions/:id", anyOperator, txHandler.GetByID)
	protected.Get("/transactions/:id/receipt", anyOperator, txHandler.DownloadReceipt)

	notificationHandler := NewNotificationHandler(deps.NotificationUC, log)
	protected.Get("/notifications", anyOperator, notificationHandler.List)
	protected.Post("/notifications/low-stock", adminOnly, notificationHandler.ScanLowStock)
}
