package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/booking-admin/internal/models"
)

const scheduleCollection = "/schedule"

// ScheduleRepository maps schedule operations onto the booking API. The API offers no update.
type ScheduleRepository struct {
	client *BookingClient
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(client *BookingClient) *ScheduleRepository {
	return &ScheduleRepository{client: client}
}

// List fetches GET /schedule.
func (r *ScheduleRepository) List(ctx context.Context) ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := r.client.Do(ctx, http.MethodGet, scheduleCollection, nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// Create posts the draft to POST /schedule and returns the stored schedule.
func (r *ScheduleRepository) Create(ctx context.Context, draft models.ScheduleDraft) (*models.Schedule, error) {
	var created models.Schedule
	if err := r.client.Do(ctx, http.MethodPost, scheduleCollection, draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete issues DELETE /schedule/:id.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	return r.client.Do(ctx, http.MethodDelete, itemPath(scheduleCollection, id), nil, nil)
}
