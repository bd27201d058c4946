package app

import (
	"os"
	"time"

	"github.com/kgrubic/boston-energy/internal/auth"
	"github.com/kgrubic/boston-energy/internal/cache"
	"github.com/kgrubic/boston-energy/internal/config"
	"github.com/kgrubic/boston-energy/internal/contracts"
	"github.com/kgrubic/boston-energy/internal/health"
	"github.com/kgrubic/boston-energy/internal/middleware"
	"github.com/kgrubic/boston-energy/internal/portfolio"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. ca may be nil (cache disabled).
func CreateApp(cfg *config.Config, db *gorm.DB, ca *cache.Cache) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(cfg.CORSOrigins))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	api := app.Group("/api")
	api.Get("/health", health.OK)

	// Auth (no auth middleware): POST login
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	authHandlers := &auth.Handlers{
		Username:     cfg.DemoUsername,
		PasswordHash: passwordHash,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     time.Duration(cfg.JWTExpiresMinutes) * time.Minute,
	}
	api.Post("/auth/login", authHandlers.Login)

	// Contracts module. Derived views register before /:id so the router
	// does not swallow them as ids.
	contractService := &contracts.Service{DB: db}
	contractHandlers := &contracts.Handlers{Service: contractService, Cache: ca}
	contractGroup := api.Group("/contracts")
	contractGroup.Get("/price-bounds", contractHandlers.GetPriceBounds)
	contractGroup.Get("/locations", contractHandlers.ListLocations)
	contractGroup.Get("/", contractHandlers.ListContracts)
	contractGroup.Post("/", contractHandlers.CreateContract)
	contractGroup.Get("/:id", contractHandlers.GetContract)
	contractGroup.Patch("/:id", contractHandlers.UpdateContract)
	contractGroup.Delete("/:id", contractHandlers.DeleteContract)

	// Portfolio module (auth required)
	portfolioService := &portfolio.Service{DB: db}
	portfolioHandlers := &portfolio.Handlers{Service: portfolioService}
	portfolioGroup := api.Group("/portfolio", middleware.RequireAuth(cfg.JWTSecret))
	portfolioGroup.Post("/items/:contract_id", portfolioHandlers.AddItem)
	portfolioGroup.Delete("/items/:contract_id", portfolioHandlers.RemoveItem)
	portfolioGroup.Get("/items", portfolioHandlers.ListItems)
	portfolioGroup.Get("/metrics", portfolioHandlers.GetMetrics)

	// Static SPA bundle when present
	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err == nil {
			app.Static("/", cfg.StaticDir, fiber.Static{Index: "index.html"})
		}
	}

	return app, nil
}
