// Package server wires the store, services and HTTP layer together.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/sangkips/preferences-api/internal/application/service"
	"github.com/sangkips/preferences-api/internal/config"
	"github.com/sangkips/preferences-api/internal/infrastructure/database"
	"github.com/sangkips/preferences-api/internal/infrastructure/repository"
	"github.com/sangkips/preferences-api/internal/presentation/http/handler"
	"github.com/sangkips/preferences-api/internal/presentation/http/middleware"
	"github.com/sangkips/preferences-api/internal/presentation/http/routes"
	"github.com/sangkips/preferences-api/pkg/utils"
)

// Server is the assembled HTTP service
type Server struct {
	cfg         *config.Config
	router      *gin.Engine
	rateLimiter *middleware.UserRateLimiter
}

// New builds the router on top of db. reg receives the HTTP collectors and
// gatherer is exposed on the metrics endpoint; both may be nil to use the
// prometheus defaults.
func New(cfg *config.Config, db *gorm.DB, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*Server, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// Initialize repositories
	settingsRepo := repository.NewUserSettingsRepository(db)
	notificationRepo := repository.NewNotificationPreferencesRepository(db)
	themeRepo := repository.NewThemeSettingsRepository(db)

	// Initialize services
	generalService := service.NewGeneralSettingsService(settingsRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	themeService := service.NewThemeService(themeRepo)

	handlers := &routes.Handlers{
		Preferences: handler.NewPreferencesHandler(generalService, notificationService, themeService),
		Health: handler.NewHealthHandler(cfg.App.Name, cfg.App.Version, handler.PingerFunc(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		})),
	}

	deps := &routes.Deps{Cfg: cfg}

	if cfg.Metrics.Enabled {
		deps.Metrics = middleware.NewHTTPMetrics(reg)
		deps.MetricsHandler = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}

	if cfg.Auth.Mode == config.AuthModeJWT {
		verifier, err := utils.NewGatewayTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.App.Name)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create token verifier")
		}
		deps.TokenVerifier = verifier
	}

	var rateLimiter *middleware.UserRateLimiter
	if cfg.RateLimit.Requests > 0 {
		rateLimiter = middleware.NewUserRateLimiter(middleware.RateLimiterConfigFrom(&cfg.RateLimit))
		deps.RateLimiter = rateLimiter
	}

	return &Server{
		cfg:         cfg,
		router:      routes.Setup(handlers, deps),
		rateLimiter: rateLimiter,
	}, nil
}

// Handler returns the HTTP handler of the service
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases background resources
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// Run serves on the configured port until ctx is done, then shuts down
// gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.App.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("service", s.cfg.App.Name).
			Str("version", s.cfg.App.Version).
			Str("env", s.cfg.App.Env).
			Str("addr", srv.Addr).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown failed")
	}

	log.Info().Str("service", s.cfg.App.Name).Msg("server stopped")
	return nil
}
