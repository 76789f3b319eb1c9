package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"

	"github.com/noah-isme/booking-admin/internal/middleware"
	"github.com/noah-isme/booking-admin/internal/models"
	"github.com/noah-isme/booking-admin/internal/service"
	"github.com/noah-isme/booking-admin/internal/ui"
	"github.com/noah-isme/booking-admin/pkg/config"
	"github.com/noah-isme/booking-admin/pkg/logger"
	"github.com/noah-isme/booking-admin/pkg/middleware/requestid"
)

// RouterConfig carries the cross-cutting pieces of the HTTP server.
type RouterConfig struct {
	Logger   *zap.Logger
	Session  config.SessionConfig
	Metrics  *service.MetricsService
	Renderer render.HTMLRender
}

// Handlers groups every route handler.
type Handlers struct {
	Presenter *Presenter
	Subjects  *CatalogHandler[models.Subject, models.SubjectDraft]
	Teachers  *CatalogHandler[models.Teacher, models.TeacherDraft]
	Schedules *ScheduleHandler
	Export    *ExportHandler
	Auth      *AuthHandler
	System    *SystemHandler
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := gin.New()
	r.HTMLRender = cfg.Renderer
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logger.GinMiddleware(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	r.GET("/health", h.System.Health)
	r.GET("/ready", h.System.Ready)
	if cfg.Metrics != nil {
		r.GET("/metrics", h.System.Prometheus)
	}
	r.StaticFS("/static", http.FS(ui.Static()))

	app := r.Group("")
	app.Use(middleware.Session(cfg.Session))
	app.Use(middleware.Layout())

	h.Auth.Register(app)
	h.Schedules.Register(app)
	app.GET("/schedule/export", h.Export.Schedules)
	h.Subjects.Register(app)
	h.Teachers.Register(app)
	app.GET("/api/session", h.System.Session)

	r.NoRoute(middleware.Session(cfg.Session), middleware.Layout(), h.Presenter.NotFound)
	return r
}
