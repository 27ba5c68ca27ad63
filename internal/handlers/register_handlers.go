package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/orgbooks-dev/orgbooks/cmd/docs"
	portssvc "github.com/orgbooks-dev/orgbooks/internal/core/ports/services"
	"github.com/orgbooks-dev/orgbooks/internal/middleware"
	"github.com/orgbooks-dev/orgbooks/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, services.Account)
	registerCategoryRoutes(v1, services.Category)
	registerCategoryMapRoutes(v1, services.CategoryMap)
	registerTransactionRoutes(v1, services.Transaction)
	registerJournalRoutes(v1, services.Posting)
	registerImportRoutes(v1, services.Import, cfg.MaxUploadBytes, importUploadMiddleware(cfg)...)
}

// importUploadMiddleware rate-limits the upload route; file parsing is the
// most expensive request the server takes.
func importUploadMiddleware(cfg *config.Config) []gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.ImportRateLimit)
	if err != nil {
		slog.Warn("invalid IMPORT_RATE_LIMIT, uploads will not be rate limited",
			slog.String("value", cfg.ImportRateLimit), slog.String("error", err.Error()))
		return nil
	}
	limiterInstance := limiter.New(memory.NewStore(), rate)
	return []gin.HandlerFunc{middleware.RateLimit(limiterInstance)}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
