package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/booking-admin/internal/models"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, draft models.SubjectDraft) (*models.Subject, error)
	Update(ctx context.Context, subject models.Subject) error
	Delete(ctx context.Context, id string) error
}

// SubjectService handles disciplines.
type SubjectService struct {
	repo   subjectRepository
	logger *zap.Logger
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(repo subjectRepository, logger *zap.Logger) *SubjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, logger: logger}
}

func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, logFailure(s.logger, "list subjects", err)
	}
	return subjects, nil
}

func (s *SubjectService) Get(ctx context.Context, id string) (models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Subject{}, logFailure(s.logger, "get subject", err, zap.String("id", id))
	}
	if subject == nil {
		return models.Subject{}, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return *subject, nil
}

func (s *SubjectService) Create(ctx context.Context, draft models.SubjectDraft) (*models.Subject, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, logFailure(s.logger, "create subject", err)
	}
	return created, nil
}

func (s *SubjectService) Update(ctx context.Context, subject models.Subject) error {
	if subject.ID.IsZero() {
		return appErrors.Clone(appErrors.ErrValidation, "subject id is required")
	}
	if err := s.repo.Update(ctx, subject); err != nil {
		return logFailure(s.logger, "update subject", err, zap.String("id", subject.ID.String()))
	}
	return nil
}

func (s *SubjectService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "subject id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return logFailure(s.logger, "delete subject", err, zap.String("id", id))
	}
	return nil
}
