package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/booking-admin/internal/handler"
	"github.com/noah-isme/booking-admin/internal/models"
	"github.com/noah-isme/booking-admin/internal/repository"
	"github.com/noah-isme/booking-admin/internal/service"
	"github.com/noah-isme/booking-admin/internal/ui"
	"github.com/noah-isme/booking-admin/pkg/cache"
	"github.com/noah-isme/booking-admin/pkg/config"
	"github.com/noah-isme/booking-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionRepo, closeSessions, err := newSessionRepository(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to init session store", zap.Error(err))
	}
	defer closeSessions()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	validate := validator.New()
	sessions := service.NewSessionService(sessionRepo, metrics, validate, logr)
	client := repository.NewBookingClient(cfg.BookingAPI.BaseURL, cfg.BookingAPI.Timeout, sessions, metrics, logr)

	teachers := service.NewTeacherService(repository.NewTeacherRepository(client), logr)
	subjects := service.NewSubjectService(repository.NewSubjectRepository(client), logr)
	schedules := service.NewScheduleService(repository.NewScheduleRepository(client), validate, logr)
	exports := service.NewExportService(schedules, cfg.Presentation.Location(), logr)

	renderer, err := ui.NewRenderer(cfg.Presentation.Location())
	if err != nil {
		logr.Fatal("failed to parse templates", zap.Error(err))
	}
	presenter := handler.NewPresenter(sessions, cfg.Presentation.NotificationDuration)

	router := handler.NewRouter(handler.RouterConfig{
		Logger:   logr,
		Session:  cfg.Session,
		Metrics:  metrics,
		Renderer: renderer,
	}, handler.Handlers{
		Presenter: presenter,
		Subjects:  handler.NewCatalogHandler[models.Subject, models.SubjectDraft](subjects, presenter, handler.SubjectOptions()),
		Teachers:  handler.NewCatalogHandler[models.Teacher, models.TeacherDraft](teachers, presenter, handler.TeacherOptions()),
		Schedules: handler.NewScheduleHandler(teachers, subjects, schedules, sessions, presenter),
		Export:    handler.NewExportHandler(exports, presenter),
		Auth:      handler.NewAuthHandler(sessions, presenter, logr),
		System:    handler.NewSystemHandler(sessions, metrics),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "booking_api", cfg.BookingAPI.BaseURL, "session_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newSessionRepository picks the session store named by SESSION_STORE.
func newSessionRepository(ctx context.Context, cfg *config.Config, logr *zap.Logger) (service.SessionRepository, func(), error) {
	if cfg.Session.Store == config.SessionStoreRedis {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewRedisSessionRepository(client, cfg.Redis.KeyPrefix, cfg.Session.TTL, logr)
		return repo, func() {
			if err := repo.Close(); err != nil {
				logr.Warn("failed to close redis", zap.Error(err))
			}
		}, nil
	}

	repo := repository.NewMemorySessionRepository(cfg.Session.TTL)
	repo.StartJanitor(ctx, time.Minute)
	return repo, func() {}, nil
}
