package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/booking-admin/internal/models"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

type scheduleRepository interface {
	List(ctx context.Context) ([]models.Schedule, error)
	Create(ctx context.Context, draft models.ScheduleDraft) (*models.Schedule, error)
	Delete(ctx context.Context, id string) error
}

// ScheduleService handles bookings. Only required fields are checked; ordering and overlaps are
// left to the booking API.
type ScheduleService struct {
	repo      scheduleRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(repo scheduleRepository, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, validator: validate, logger: logger}
}

func (s *ScheduleService) List(ctx context.Context) ([]models.Schedule, error) {
	schedules, err := s.repo.List(ctx)
	if err != nil {
		return nil, logFailure(s.logger, "list schedules", err)
	}
	return schedules, nil
}

// Create validates the composite form and posts it.
func (s *ScheduleService) Create(ctx context.Context, draft models.ScheduleDraft) (*models.Schedule, error) {
	draft.TeacherID = strings.TrimSpace(draft.TeacherID)
	draft.SubjectID = strings.TrimSpace(draft.SubjectID)
	draft.StartTime = strings.TrimSpace(draft.StartTime)
	draft.EndTime = strings.TrimSpace(draft.EndTime)
	if err := s.validator.Struct(draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, missingFieldsMessage(err))
	}
	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, logFailure(s.logger, "create schedule", err)
	}
	return created, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "schedule id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return logFailure(s.logger, "delete schedule", err, zap.String("id", id))
	}
	return nil
}

var scheduleFieldLabels = map[string]string{
	"TeacherID": "professor",
	"SubjectID": "disciplina",
	"StartTime": "início",
	"EndTime":   "término",
}

func missingFieldsMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErrors.ErrValidation.Message
	}
	labels := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		label, ok := scheduleFieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}
		labels = append(labels, label)
	}
	return "campos obrigatórios: " + strings.Join(labels, ", ")
}

// logFailure records a failed upstream operation and passes the typed error through unchanged.
func logFailure(logger *zap.Logger, op string, err error, fields ...zap.Field) error {
	appErr := appErrors.FromError(err)
	fields = append(fields, zap.String("op", op), zap.String("code", appErr.Code), zap.Error(err))
	if errors.Is(err, appErrors.ErrMissingToken) {
		logger.Info("booking api call skipped", fields...)
		return err
	}
	logger.Warn("booking api operation failed", fields...)
	return err
}
