package handlers

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_app/cmd/docs"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/platform/metrics"
	"github.com/SscSPs/bookkeeping_app/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.Metrics,
	posthogClient *utils.PosthogClientWrapper,
	db Pinger,
) error {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
	}))
	r.Use(middleware.MetricsMiddleware(m))

	r.GET("/", getHome)
	r.GET("/health", healthHandler(db))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	if err := setupAPIV1Routes(r, cfg, services, posthogClient); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group: auth first so the rate limiter
// can key on the session's company.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid rate limit %q: %w", cfg.RateLimit, err)
	}
	companyLimiter := limiter.New(memory.NewStore(), rate)

	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		middleware.RateLimit(companyLimiter),
		middleware.PosthogMiddleware(posthogClient),
	)

	RegisterBooksRoutes(v1, services, posthogClient, func(userID, companyID string) (string, error) {
		return utils.GenerateJWT(userID, companyID, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	})
	return nil
}

// RegisterBooksRoutes mounts every bookkeeping endpoint on rg. Callers supply the
// authentication middleware.
func RegisterBooksRoutes(
	rg *gin.RouterGroup,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
	issuer TokenIssuer,
) {
	registerValidators(domain.NewClassifier())

	registerCompanyRoutes(rg, services.Company, issuer)
	registerAccountRoutes(rg, services.Ledger, services.Reporting)
	registerVoucherRoutes(rg, services.Posting, posthogClient)
	registerItemRoutes(rg, services.Items)
	registerReportingRoutes(rg, services.Reporting)
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
