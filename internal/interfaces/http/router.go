package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestion-hotel/internal/application/consumption"
	"github.com/jhoicas/gestion-hotel/internal/application/lodging"
	"github.com/jhoicas/gestion-hotel/internal/application/usecase"
	"github.com/jhoicas/gestion-hotel/pkg/jwt"
	"github.com/jhoicas/gestion-hotel/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RoomUC      *usecase.RoomUseCase
	GuestUC     *lodging.GuestUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	LedgerUC    *consumption.LedgerUseCase
	StatementUC *consumption.StatementUseCase
	JWTSecret   string // vacío = sin autenticación (desarrollo)
	ServiceName string
	DocsPath    string
	Log         zerolog.Logger
}

// Router registra middlewares transversales, /health, /metrics, /docs y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))
	app.Use(MetricsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Swagger UI en /docs solo si existe el archivo generado.
	if deps.DocsPath != "" {
		if _, err := os.Stat(deps.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.DocsPath,
				Path:     "docs",
				Title:    "Gestión Hotel API",
			}))
		}
	}

	api := app.Group("/api")
	authn, adminOnly := passThrough, passThrough
	if deps.JWTSecret != "" {
		authn = AuthMiddleware(deps.JWTSecret)
		adminOnly = RequireRole(jwt.RoleAdmin)
	}
	staff := api.Group("/", authn)

	// Rooms
	rooms := staff.Group("/rooms")
	roomHandler := NewRoomHandler(deps.RoomUC, deps.GuestUC, deps.StatementUC)
	rooms.Post("/", roomHandler.Create)
	rooms.Get("/", roomHandler.List)
	rooms.Get("/summary", roomHandler.Summary)
	rooms.Get("/:id", requireUUID, roomHandler.GetByID)
	rooms.Put("/:id", requireUUID, roomHandler.Update)
	rooms.Delete("/:id", requireUUID, adminOnly, roomHandler.Delete)
	rooms.Get("/:id/guests", requireUUID, roomHandler.Guests)
	rooms.Post("/:id/guests", requireUUID, roomHandler.AddGuest)
	rooms.Get("/:id/statement", requireUUID, roomHandler.Statement)

	// Guests
	guests := staff.Group("/guests")
	guestHandler := NewGuestHandler(deps.GuestUC)
	guests.Post("/", guestHandler.Create)
	guests.Get("/", guestHandler.List)
	guests.Get("/:id", requireUUID, guestHandler.GetByID)
	guests.Put("/:id", requireUUID, guestHandler.Update)
	guests.Delete("/:id", requireUUID, guestHandler.Delete)

	// Products
	products := staff.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", requireUUID, productHandler.GetByID)
	products.Put("/:id", requireUUID, productHandler.Update)
	products.Delete("/:id", requireUUID, adminOnly, productHandler.Delete)

	// Categories
	categories := staff.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", requireUUID, categoryHandler.GetByID)
	categories.Put("/:id", requireUUID, categoryHandler.Update)
	categories.Delete("/:id", requireUUID, adminOnly, categoryHandler.Delete)

	// Consumptions
	consumptions := staff.Group("/consumptions")
	consumptionHandler := NewConsumptionHandler(deps.LedgerUC)
	consumptions.Post("/", consumptionHandler.Create)
	consumptions.Get("/", consumptionHandler.List)
	consumptions.Get("/rooms", consumptionHandler.Rooms)
	consumptions.Get("/:id", requireUUID, consumptionHandler.GetByID)
	consumptions.Put("/:id", requireUUID, consumptionHandler.Update)
	consumptions.Delete("/:id", requireUUID, consumptionHandler.Delete)
}

func passThrough(c *fiber.Ctx) error { return c.Next() }
