package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sangkips/preferences-api/internal/presentation/http/dto/response"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler serves the probe and service info endpoints
type HealthHandler struct {
	service string
	version string
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service, version string, db Pinger) *HealthHandler {
	return &HealthHandler{
		service: service,
		version: version,
		db:      db,
		timeout: 2 * time.Second,
	}
}

// Root describes the service
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, response.RootResponse{
		Service: h.service,
		Version: h.version,
		Status:  "running",
		Health:  "/health",
	})
}

// Health reports that the process is up
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.HealthResponse{
		Status:  "healthy",
		Service: h.service,
		Version: h.version,
	})
}

// Ready reports whether the database answers
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("readiness check failed")
			c.JSON(http.StatusServiceUnavailable, response.StatusResponse{Status: "not_ready"})
			return
		}
	}

	c.JSON(http.StatusOK, response.StatusResponse{Status: "ready"})
}

// Live reports that the process can serve requests
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, response.StatusResponse{Status: "alive"})
}
