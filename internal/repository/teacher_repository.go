package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/booking-admin/internal/models"
)

const teacherCollection = "/teacher"

// TeacherRepository maps teacher operations onto the booking API.
type TeacherRepository struct {
	client *BookingClient
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(client *BookingClient) *TeacherRepository {
	return &TeacherRepository{client: client}
}

// List fetches GET /teacher.
func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := r.client.Do(ctx, http.MethodGet, teacherCollection, nil, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// FindByID fetches GET /teacher/:id.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	var teacher *models.Teacher
	if err := r.client.Do(ctx, http.MethodGet, itemPath(teacherCollection, id), nil, &teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// Create posts the draft to POST /teacher/ (the trailing slash is part of the contract).
func (r *TeacherRepository) Create(ctx context.Context, draft models.TeacherDraft) (*models.Teacher, error) {
	var created models.Teacher
	if err := r.client.Do(ctx, http.MethodPost, teacherCollection+"/", draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update sends the full object to PUT /teacher/:id.
func (r *TeacherRepository) Update(ctx context.Context, teacher models.Teacher) error {
	return r.client.Do(ctx, http.MethodPut, itemPath(teacherCollection, teacher.ID.String()), teacher, nil)
}

// Delete issues DELETE /teacher/:id.
func (r *TeacherRepository) Delete(ctx context.Context, id string) error {
	return r.client.Do(ctx, http.MethodDelete, itemPath(teacherCollection, id), nil, nil)
}
