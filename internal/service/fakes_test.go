package service

import (
	"context"
	"sync"

	"github.com/noah-isme/booking-admin/internal/models"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

type fakeTeacherRepo struct {
	mu        sync.Mutex
	items     map[string]models.Teacher
	err       error
	created   []models.TeacherDraft
	updated   []models.Teacher
	deleted   []string
	fetched   []string
	returnNil bool
}

func (f *fakeTeacherRepo) List(context.Context) ([]models.Teacher, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Teacher, 0, len(f.items))
	for _, t := range f.items {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTeacherRepo) FindByID(_ context.Context, id string) (*models.Teacher, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, id)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.returnNil {
		return nil, nil
	}
	teacher, ok := f.items[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &teacher, nil
}

func (f *fakeTeacherRepo) Create(_ context.Context, draft models.TeacherDraft) (*models.Teacher, error) {
	f.created = append(f.created, draft)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Teacher{ID: "99", Name: draft.Name, Email: draft.Email, EmployeeID: draft.EmployeeID}, nil
}

func (f *fakeTeacherRepo) Update(_ context.Context, teacher models.Teacher) error {
	f.updated = append(f.updated, teacher)
	return f.err
}

func (f *fakeTeacherRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

type fakeScheduleRepo struct {
	items   []models.Schedule
	err     error
	created []models.ScheduleDraft
	deleted []string
}

func (f *fakeScheduleRepo) List(context.Context) ([]models.Schedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeScheduleRepo) Create(_ context.Context, draft models.ScheduleDraft) (*models.Schedule, error) {
	f.created = append(f.created, draft)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Schedule{
		ID:        "3",
		Teacher:   models.ScheduleParty{ID: models.ID(draft.TeacherID)},
		Subject:   models.ScheduleParty{ID: models.ID(draft.SubjectID)},
		StartTime: draft.StartTime,
		EndTime:   draft.EndTime,
	}, nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}
