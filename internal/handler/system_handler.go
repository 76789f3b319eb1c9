package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/booking-admin/internal/models"
	"github.com/noah-isme/booking-admin/internal/service"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
	"github.com/noah-isme/booking-admin/pkg/response"
)

type sessionProbe interface {
	Ping(ctx context.Context) error
	Status(ctx context.Context) models.SessionStatus
}

// SystemHandler exposes health, readiness, metrics and session status endpoints.
type SystemHandler struct {
	sessions sessionProbe
	metrics  *service.MetricsService
}

// NewSystemHandler constructs a SystemHandler. A nil metrics service disables /metrics.
func NewSystemHandler(sessions sessionProbe, metrics *service.MetricsService) *SystemHandler {
	return &SystemHandler{sessions: sessions, metrics: metrics}
}

// Health responds with a generic OK payload for liveness usage.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the session store answers.
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.sessions.Ping(ctx); err != nil {
		_ = c.Error(err)
		response.Error(c, appErrors.Wrap(err, "NOT_READY", http.StatusServiceUnavailable, "session store unavailable"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *SystemHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Session reports the current session in the JSON envelope.
func (h *SystemHandler) Session(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.sessions.Status(c.Request.Context()))
}
