package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/retail-ops-api/docs"
	"github.com/jhoicas/retail-ops-api/internal/application/auth"
	"github.com/jhoicas/retail-ops-api/internal/application/hierarchy"
	"github.com/jhoicas/retail-ops-api/internal/application/inventory"
	"github.com/jhoicas/retail-ops-api/internal/application/notification"
	"github.com/jhoicas/retail-ops-api/internal/application/onboarding"
	"github.com/jhoicas/retail-ops-api/internal/application/ports"
	"github.com/jhoicas/retail-ops-api/internal/application/sales"
	"github.com/jhoicas/retail-ops-api/internal/application/staff"
	"github.com/jhoicas/retail-ops-api/internal/application/usecase"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/cache"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/delivery"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/export"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/retail-ops-api/internal/infrastructure/pdf"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/retail-ops-api/internal/interfaces/http"
	"github.com/jhoicas/retail-ops-api/pkg/config"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

// @title                       Retail Ops API
// @version                     1.0
// @description                 Backend multi-tenant: inventario, ventas, personal y notificaciones.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Persistencia: PostgreSQL o memoria (desarrollo / demos)
	var (
		repos         repository.Repositories
		txRunner      repository.TxRunner
		notifications repository.NotificationRepository
		adminRequests repository.AdminRequestRepository
	)
	switch cfg.App.Store {
	case "memory":
		store := memory.New()
		repos, txRunner, notifications = store.Repositories(), store.TxRunner(), store.Notifications()
		adminRequests = store.AdminRequests()
		log.Warn().Msg("APP_STORE=memory: los datos no se persisten")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migración del esquema")
			}
		}
		repos = postgres.NewRepositories(pool)
		txRunner = postgres.NewTxRunner(pool)
		notifications = postgres.NewNotificationRepository(pool)
		adminRequests = postgres.NewAdminRequestRepository(pool)
	}

	// Caché de destacados: Redis si REDIS_ADDR está definido
	var featured ports.FeaturedCache = cache.NoopFeaturedCache{}
	if cfg.Redis.Addr != "" {
		rc := cache.NewRedisFeaturedCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.FeaturedTTL, log)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, caché deshabilitada")
			_ = rc.Close()
		} else {
			featured = rc
			defer rc.Close()
		}
		cancel()
	}

	images, err := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de imágenes")
	}

	dispatcher := notification.NewDispatcher(notifications, log, notification.Config{
		QueueSize: cfg.Notify.QueueSize,
		Workers:   cfg.Notify.Workers,
	})

	resolver := hierarchy.NewResolver(repos.Users, repos.Managers, repos.Agents)
	ledger := inventory.NewLedger(cfg.Stock.LowStockThreshold)
	credentials := delivery.NewFromConfig(cfg.Delivery, log)

	salesUC := sales.NewUseCase(txRunner, ledger, repos.Sales, repos.Products, resolver, dispatcher, log)
	salesDocs := sales.NewDocumentsUseCase(salesUC, infrapdf.NewReceiptGenerator(), export.NewSalesWorkbook())
	staffUC := staff.NewUseCase(txRunner, repos, resolver, credentials, dispatcher, log)
	productUC := usecase.NewProductUseCase(txRunner, repos.Products, resolver, featured, ledger)
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// Tres documentos por solicitud de alta más los campos del formulario.
		BodyLimit:    3*onboarding.MaxDocumentBytes + 1<<20,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Retail Ops API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    usecase.NewUserUseCase(repos.Users),
		ProductUC: productUC,
		UploadUC:  usecase.NewUploadUseCase(images),
		SalesUC:   salesUC,
		SalesDocs: salesDocs,
		StaffUC:   staffUC,
		InboxUC:   notification.NewInboxUseCase(notifications),
		AdminReqs: onboarding.NewUseCase(adminRequests, images, log),
		Log:       log.Named("http"),
		JWTSecret: cfg.JWT.Secret,
		AppName:   cfg.App.Name,
		RateLimit: cfg.HTTP.RateLimit,
		UploadDir: images.Dir(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Después del servidor: ya no entran eventos nuevos y se vacía la cola.
	dispatcher.Close()

	log.Info().Msg("aplicación detenida")
}
