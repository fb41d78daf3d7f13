package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"

	"github.com/jhoicas/estoque-inteligente/internal/application/inventory"
	"github.com/jhoicas/estoque-inteligente/internal/application/sales"
	"github.com/jhoicas/estoque-inteligente/internal/application/usecase"
)

// AppConfig opciones del servidor fiber.
type AppConfig struct {
	Name           string
	AllowedOrigins string
	DocsPath       string // swagger.json para la UI en /docs; vacío o inexistente = sin UI
	Logger         zerolog.Logger
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC    *usecase.CategoryUseCase
	SupplierUC    *usecase.SupplierUseCase
	ProductUC     *usecase.ProductUseCase
	AlertUC       *usecase.AlertUseCase
	CompanyUC     *usecase.CompanyUseCase
	DashboardUC   *usecase.DashboardUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Sales         *sales.Recorder
}

// NewApp arma la aplicación fiber con middlewares, endpoints operativos y rutas /api.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(RequestLogger(cfg.Logger))
	app.Use(Metrics())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "documentación no registrada")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	// swagger.New lee el archivo al construirse
	if cfg.DocsPath != "" {
		if _, err := os.Stat(cfg.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.DocsPath,
				Path:     "docs",
				Title:    cfg.Name,
			}))
		}
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)
	categories.Get("/:id/subcategories", categoryHandler.Subcategories)
	categories.Get("/:id/descendants", categoryHandler.Descendants)
	categories.Get("/:id/path", categoryHandler.Path)

	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// las rutas fijas van antes de /:id
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.ProductUC, deps.Replenishment)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/replenishment", inventoryHandler.Replenishment)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/stock", inventoryHandler.AdjustStock)
	products.Get("/:id/movements", inventoryHandler.Movements)

	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.Sales)
	salesGroup.Post("/items", saleHandler.AddItem)
	salesGroup.Delete("/items/:id", saleHandler.DeleteItem)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", saleHandler.Delete)
	salesGroup.Get("/:saleId/items", saleHandler.ListItems)

	alertHandler := NewAlertHandler(deps.AlertUC)
	for _, prefix := range []string{"/notifications", "/alerts"} {
		g := api.Group(prefix)
		g.Get("/", alertHandler.List)
		g.Post("/", alertHandler.Create)
		g.Get("/unread", alertHandler.Unread)
		g.Get("/unread-count", alertHandler.UnreadCount)
		g.Patch("/read-all", alertHandler.MarkAllRead)
		g.Patch("/:id/read", alertHandler.MarkRead)
	}

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Get("/company", companyHandler.Get)
	api.Post("/company", companyHandler.Save)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.Summary)
}
