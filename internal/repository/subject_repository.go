package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/booking-admin/internal/models"
)

const subjectCollection = "/subject"

// SubjectRepository maps subject operations onto the booking API.
type SubjectRepository struct {
	client *BookingClient
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(client *BookingClient) *SubjectRepository {
	return &SubjectRepository{client: client}
}

func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := r.client.Do(ctx, http.MethodGet, subjectCollection, nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	var subject *models.Subject
	if err := r.client.Do(ctx, http.MethodGet, itemPath(subjectCollection, id), nil, &subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (r *SubjectRepository) Create(ctx context.Context, draft models.SubjectDraft) (*models.Subject, error) {
	var created models.Subject
	if err := r.client.Do(ctx, http.MethodPost, subjectCollection+"/", draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *SubjectRepository) Update(ctx context.Context, subject models.Subject) error {
	return r.client.Do(ctx, http.MethodPut, itemPath(subjectCollection, subject.ID.String()), subject, nil)
}

func (r *SubjectRepository) Delete(ctx context.Context, id string) error {
	return r.client.Do(ctx, http.MethodDelete, itemPath(subjectCollection, id), nil, nil)
}
