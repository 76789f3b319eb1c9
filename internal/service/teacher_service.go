package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/booking-admin/internal/models"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

type teacherRepository interface {
	List(ctx context.Context) ([]models.Teacher, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	Create(ctx context.Context, draft models.TeacherDraft) (*models.Teacher, error)
	Update(ctx context.Context, teacher models.Teacher) error
	Delete(ctx context.Context, id string) error
}

// TeacherService orchestrates teacher operations against the booking API.
type TeacherService struct {
	repo   teacherRepository
	logger *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, logger *zap.Logger) *TeacherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, logger: logger}
}

// List returns every teacher.
func (s *TeacherService) List(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.repo.List(ctx)
	if err != nil {
		return nil, logFailure(s.logger, "list teachers", err)
	}
	return teachers, nil
}

// Get returns one teacher; an empty answer counts as not found.
func (s *TeacherService) Get(ctx context.Context, id string) (models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Teacher{}, logFailure(s.logger, "get teacher", err, zap.String("id", id))
	}
	if teacher == nil {
		return models.Teacher{}, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return *teacher, nil
}

// Create posts the draft as entered.
func (s *TeacherService) Create(ctx context.Context, draft models.TeacherDraft) (*models.Teacher, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Email = strings.TrimSpace(draft.Email)
	draft.EmployeeID = strings.TrimSpace(draft.EmployeeID)
	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, logFailure(s.logger, "create teacher", err)
	}
	return created, nil
}

// Update sends the full teacher object.
func (s *TeacherService) Update(ctx context.Context, teacher models.Teacher) error {
	if teacher.ID.IsZero() {
		return appErrors.Clone(appErrors.ErrValidation, "teacher id is required")
	}
	if err := s.repo.Update(ctx, teacher); err != nil {
		return logFailure(s.logger, "update teacher", err, zap.String("id", teacher.ID.String()))
	}
	return nil
}

// Delete removes a teacher by id.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "teacher id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return logFailure(s.logger, "delete teacher", err, zap.String("id", id))
	}
	return nil
}
