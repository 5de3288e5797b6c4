package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/retail-ops-api/internal/application/auth"
	"github.com/jhoicas/retail-ops-api/internal/application/notification"
	"github.com/jhoicas/retail-ops-api/internal/application/onboarding"
	"github.com/jhoicas/retail-ops-api/internal/application/sales"
	"github.com/jhoicas/retail-ops-api/internal/application/staff"
	"github.com/jhoicas/retail-ops-api/internal/application/usecase"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	ProductUC *usecase.ProductUseCase
	UploadUC  *usecase.UploadUseCase
	SalesUC   *sales.UseCase
	SalesDocs *sales.DocumentsUseCase
	StaffUC   *staff.UseCase
	InboxUC   *notification.InboxUseCase
	AdminReqs *onboarding.UseCase
	Log       *logger.Logger
	JWTSecret string
	AppName   string
	RateLimit int    // peticiones por minuto y por IP; 0 desactiva
	UploadDir string // vacío = no se sirven archivos locales
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	if deps.UploadDir != "" {
		app.Static("/uploads", deps.UploadDir)
	}

	api := app.Group("/api")
	if deps.RateLimit > 0 {
		api.Use(limiter.New(limiter.Config{Max: deps.RateLimit, Expiration: time.Minute}))
	}

	const (
		admin   = entity.RoleAdmin
		manager = entity.RoleManager
		agent   = entity.RoleAgent
	)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/profile", authHandler.UpdateProfile)
	protected.Put("/auth/change-password", authHandler.ChangePassword)
	protected.Post("/auth/change-password", authHandler.ChangePassword)

	uploadHandler := NewUploadHandler(deps.UploadUC, deps.Log)
	protected.Post("/uploads", uploadHandler.Upload)

	// Products
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products := protected.Group("/products", RequireRole(admin, manager, agent))
	products.Get("/featured", productHandler.Featured)
	products.Get("/recommendations", productHandler.Recommendations)
	products.Get("/category/:category", productHandler.ByCategory)
	products.Get("/low-stock", RequireRole(admin, manager), productHandler.LowStock)
	products.Post("/", RequireRole(admin, manager), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(admin, manager), productHandler.Update)
	products.Delete("/:id", RequireRole(admin, manager), productHandler.Delete)
	products.Patch("/:id/featured", RequireRole(admin), productHandler.ToggleFeatured)

	// Sales
	saleHandler := NewSaleHandler(deps.SalesUC, deps.SalesDocs, deps.Log)
	salesGroup := protected.Group("/sales", RequireRole(admin, manager, agent))
	salesGroup.Get("/stats", saleHandler.Stats)
	salesGroup.Get("/export", saleHandler.Export)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.Get)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Put("/:id/confirm-payment", RequireRole(admin), saleHandler.ConfirmPayment)
	salesGroup.Delete("/:id", RequireRole(admin), saleHandler.Delete)

	// Staff
	staffHandler := NewStaffHandler(deps.StaffUC, deps.Log)
	managers := protected.Group("/managers", RequireRole(admin))
	managers.Post("/", staffHandler.CreateManager)
	managers.Get("/", staffHandler.ListManagers)
	managers.Get("/:id", staffHandler.GetManager)
	managers.Put("/:id", staffHandler.UpdateManager)
	managers.Delete("/:id", staffHandler.DeleteManager)

	agents := protected.Group("/agents")
	agents.Get("/me", RequireRole(agent), staffHandler.AgentMe)
	agents.Use(RequireRole(admin, manager))
	agents.Post("/", staffHandler.CreateAgent)
	agents.Get("/", staffHandler.ListAgents)
	agents.Get("/:id", staffHandler.GetAgent)
	agents.Put("/:id", staffHandler.UpdateAgent)
	agents.Delete("/:id", staffHandler.DeleteAgent)
	agents.Post("/:id/reset-password", staffHandler.ResetAgentPassword)

	workers := protected.Group("/workers", RequireRole(admin, manager))
	workers.Post("/", staffHandler.CreateWorker)
	workers.Get("/", staffHandler.ListWorkers)
	workers.Get("/:id", staffHandler.GetWorker)
	workers.Put("/:id", staffHandler.UpdateWorker)
	workers.Delete("/:id", staffHandler.DeleteWorker)

	users := protected.Group("/users", RequireRole(admin))
	users.Get("/", staffHandler.ListUsers)
	users.Post("/", staffHandler.CreateUser)
	users.Put("/:id", staffHandler.UpdateUser)
	users.Delete("/:id", staffHandler.DeleteUser)
	users.Post("/:id/reset-password", staffHandler.ResetUserPassword)

	// Solicitudes de alta como admin (cualquier usuario autenticado)
	adminRequestHandler := NewAdminRequestHandler(deps.AdminReqs, deps.Log)
	protected.Post("/admin/requests", adminRequestHandler.Submit)
	protected.Get("/admin/requests", adminRequestHandler.ListMine)

	// Notifications (cualquier usuario autenticado, acotado a su bandeja)
	notificationHandler := NewNotificationHandler(deps.InboxUC, deps.Log)
	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/:id", notificationHandler.Delete)
}
