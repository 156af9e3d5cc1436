// Package bootstrap wires configuration, adapters, and services into a
// runnable process.
package bootstrap

import (
	"strings"

	adapterhttp "tier_server/adapter/in/http"
	"tier_server/config"
	"tier_server/infra/middleware"
	"tier_server/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// NewAPI builds the admin HTTP server.
func NewAPI(cfg *config.Config) (*fiber.App, func(), error) {
	logLevel := logger.ParseLevel(cfg.LogLevel)
	if cfg.IsDevelopment() && logLevel > logger.LevelDebug {
		logLevel = logger.LevelDebug
	}
	logger.Init(logger.Config{
		Level:   logLevel,
		Service: "tier-engine",
	})

	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize dependencies")
		return nil, nil, err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),

		// go-json is a drop-in replacement, noticeably faster on the large
		// run reports this API returns.
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		BodyLimit:    1 * 1024 * 1024,
		ServerHeader: "",
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	if cfg.IsProduction() && (allowOrigins == "" || allowOrigins == "*") {
		// Never allow a wildcard with credentials in production.
		allowOrigins = ""
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		ExposeHeaders:    "X-Request-ID,X-RateLimit-Remaining",
		AllowCredentials: allowOrigins != "",
		MaxAge:           86400,
	}))

	// Health checks (no auth)
	healthHandler := adapterhttp.NewHealthHandler(deps.DB, deps.Redis)
	healthHandler.Register(app)

	// Admin surface: auth first, then throttling.
	admin := app.Group("/admin",
		middleware.AdminAuth(cfg.JWTSecret),
		middleware.RateLimit(deps.Limiter),
	)
	mappingHandler := adapterhttp.NewMappingHandler(
		deps.MappingService,
		deps.Registry,
		deps.Metrics,
		cfg.PreviewSampleSize,
	)
	mappingHandler.Register(admin)

	return app, cleanup, nil
}
