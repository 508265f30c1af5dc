package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/sangkips/preferences-api/internal/config"
	"github.com/sangkips/preferences-api/internal/presentation/http/handler"
	"github.com/sangkips/preferences-api/internal/presentation/http/middleware"
)

// BasePath is the prefix of every preference endpoint
const BasePath = "/api/v1/user-preferences"

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Preferences *handler.PreferencesHandler
	Health      *handler.HealthHandler
}

// Deps holds shared dependencies needed by the routes.
// Metrics, MetricsHandler, RateLimiter and TokenVerifier are optional.
type Deps struct {
	Cfg            *config.Config
	Metrics        *middleware.HTTPMetrics
	MetricsHandler http.Handler
	RateLimiter    *middleware.UserRateLimiter
	TokenVerifier  middleware.TokenVerifier
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	if deps.Cfg.Tracing.Exporter != config.TracingExporterNone {
		router.Use(otelgin.Middleware(deps.Cfg.App.Name))
	}
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	registerHealthRoutes(router, h)

	if deps.Cfg.Metrics.Enabled && deps.MetricsHandler != nil {
		router.GET(deps.Cfg.Metrics.Path, gin.WrapH(deps.MetricsHandler))
	}

	prefs := router.Group(BasePath)
	prefs.Use(middleware.IdentityMiddleware(&deps.Cfg.Auth, deps.TokenVerifier))
	if deps.RateLimiter != nil {
		prefs.Use(deps.RateLimiter.Middleware())
	}
	registerPreferenceRoutes(prefs, h)

	return router
}

func registerHealthRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/", h.Health.Root)
	router.GET("/health", h.Health.Health)
	router.GET("/health/ready", h.Health.Ready)
	router.GET("/health/live", h.Health.Live)
}

func registerPreferenceRoutes(prefs *gin.RouterGroup, h *Handlers) {
	prefs.GET("", h.Preferences.GetSettings)
	prefs.PUT("", h.Preferences.UpdateSettings)

	prefs.GET("/notifications", h.Preferences.GetNotifications)
	prefs.PUT("/notifications", h.Preferences.UpdateNotifications)

	prefs.GET("/theme", h.Preferences.GetTheme)
	prefs.PUT("/theme", h.Preferences.UpdateTheme)
}
