package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/frontdesigner/api/internal/eventbus"
	"github.com/frontdesigner/api/internal/models"
	"github.com/gin-gonic/gin"
)

// Pinger is a dependency that can be health checked
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	features models.Features
	redis    Pinger
	events   eventbus.Publisher
}

// NewHealthHandler creates a new health handler. redis may be nil.
func NewHealthHandler(features models.Features, redis Pinger, events eventbus.Publisher) *HealthHandler {
	if events == nil {
		events = eventbus.NopPublisher{}
	}
	return &HealthHandler{features: features, redis: redis, events: events}
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
	Features  models.Features `json:"features"`
}

// DeepHealthResponse is returned by GET /health/deep
type DeepHealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}

// Health godoc
// @Summary Service status and configured integrations
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC(),
		Version:   models.Version,
		Features:  h.features,
	})
}

// DeepHealth godoc
// @Summary Health of optional infrastructure
// @Tags health
// @Produce json
// @Success 200 {object} DeepHealthResponse
// @Failure 503 {object} DeepHealthResponse
// @Router /health/deep [get]
func (h *HealthHandler) DeepHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	deps := make(map[string]string)
	allHealthy := true

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			deps["redis"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			deps["redis"] = "healthy"
		}
	} else {
		deps["redis"] = "not configured"
	}

	switch err := h.events.Healthy(ctx); {
	case err == nil:
		deps["nats"] = "healthy"
	case errors.Is(err, eventbus.ErrDisabled):
		deps["nats"] = "not configured"
	default:
		deps["nats"] = "unhealthy: " + err.Error()
		allHealthy = false
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, DeepHealthResponse{
		Status:       status,
		Version:      models.Version,
		Dependencies: deps,
	})
}
