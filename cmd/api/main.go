// @title                       Koperasi API
// @version                     1.0
// @description                 API de caja e inventario de la koperasi.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/koperasi-api/docs"
	"github.com/jhoicas/koperasi-api/internal/app"
	"github.com/jhoicas/koperasi-api/internal/application/auth"
	"github.com/jhoicas/koperasi-api/internal/application/catalog"
	"github.com/jhoicas/koperasi-api/internal/application/dto"
	"github.com/jhoicas/koperasi-api/internal/application/inventory"
	"github.com/jhoicas/koperasi-api/internal/application/notification"
	"github.com/jhoicas/koperasi-api/internal/application/sales"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	infrapdf "github.com/jhoicas/koperasi-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/koperasi-api/internal/interfaces/http"
	"github.com/jhoicas/koperasi-api/pkg/config"
	"github.com/jhoicas/koperasi-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	authUC := auth.NewAuthUseCase(store.Admins, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	seedAdmin(ctx, cfg, authUC, log)

	// Alertas de stock bajo: se encolan tras cada commit y se guardan en segundo plano.
	dispatcher := notification.NewAlertDispatcher(store.Notifications, log, cfg.Notify.Buffer)

	deps := httpRouter.RouterDeps{
		AuthUC:          authUC,
		ProductUC:       catalog.NewProductUseCase(store.TxRunner, store.Products),
		AdjustmentUC:    inventory.NewAdjustmentUseCase(store.TxRunner, dispatcher),
		LedgerUC:        inventory.NewLedgerUseCase(store.TxRunner, store.Movements),
		ReplenishmentUC: inventory.NewReplenishmentUseCase(store.Products, store.Movements),
		CreateTxUC:      sales.NewCreateTransactionUseCase(store.TxRunner, dispatcher),
		QueryTxUC:       sales.NewQueryUseCase(store.Transactions),
		ReceiptUC: sales.NewReceiptUseCase(store.Transactions, infrapdf.NewReceiptGenerator(), sales.ShopInfo{
			Name:    cfg.Shop.Name,
			Address: cfg.Shop.Address,
		}),
		NotificationUC: notification.NewUseCase(store.Notifications, store.Products),
		Store:          store,
		LoginLimiter:   httpRouter.NewIPRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst),
		JWTSecret:      cfg.JWT.Secret,
		Log:            log,
	}

	server := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
		DisableStartupMessage: cfg.App.Env != "development",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: err.Error()})
		},
	})
	server.Use(recover.New())
	server.Use(httpRouter.RequestLogger(log))
	server.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	server.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Koperasi API",
	}))
	server.Get("/openapi.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	httpRouter.Router(server, deps)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		return server.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("aplicación finalizada con error")
		os.Exit(1)
	}
	log.Info().Msg("aplicación detenida")
}

// seedAdmin crea el admin inicial si SEED_ADMIN_USERNAME y SEED_ADMIN_PASSWORD están definidos
// y el usuario aún no existe.
func seedAdmin(ctx context.Context, cfg *config.Config, uc *auth.AuthUseCase, log *logger.Logger) {
	if cfg.Seed.AdminUsername == "" || cfg.Seed.AdminPassword == "" {
		return
	}
	created, err := uc.EnsureAdmin(ctx, dto.UpsertAdminRequest{
		Username: cfg.Seed.AdminUsername,
		Password: cfg.Seed.AdminPassword,
		Role:     entity.RoleAdmin,
		Active:   true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear admin inicial")
	}
	if created {
		log.Info().Str("username", cfg.Seed.AdminUsername).Msg("admin inicial creado")
	}
}
