package view

import (
	"context"
	"errors"
	"sync"

	"github.com/noah-isme/booking-admin/internal/models"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

var errNetwork = appErrors.Wrap(errors.New("connection reset"), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)

// recorder collects hook signals.
type recorder struct {
	mu            sync.Mutex
	refreshes     int
	notifications []*models.Notification
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		Refresh: func() {
			r.mu.Lock()
			r.refreshes++
			r.mu.Unlock()
		},
		Notify: func(n *models.Notification) {
			r.mu.Lock()
			r.notifications = append(r.notifications, n)
			r.mu.Unlock()
		},
	}
}

func (r *recorder) last() *models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return nil
	}
	return r.notifications[len(r.notifications)-1]
}

type fakeTeacherCatalog struct {
	mu      sync.Mutex
	items   []models.Teacher
	listErr error
	failGet map[string]bool
	mutErr  error
	lists   int
	gets    []string
	creates []models.TeacherDraft
	updates []models.Teacher
	deletes []string
}

func (f *fakeTeacherCatalog) List(context.Context) ([]models.Teacher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Teacher(nil), f.items...), nil
}

func (f *fakeTeacherCatalog) Get(_ context.Context, id string) (models.Teacher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets = append(f.gets, id)
	if f.failGet[id] {
		return models.Teacher{}, errNetwork
	}
	for _, t := range f.items {
		if t.ID.String() == id {
			return t, nil
		}
	}
	return models.Teacher{}, appErrors.ErrNotFound
}

func (f *fakeTeacherCatalog) Create(_ context.Context, draft models.TeacherDraft) (*models.Teacher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, draft)
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	return &models.Teacher{ID: "100", Name: draft.Name}, nil
}

func (f *fakeTeacherCatalog) Update(_ context.Context, teacher models.Teacher) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, teacher)
	return f.mutErr
}

func (f *fakeTeacherCatalog) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	return f.mutErr
}

type fakeSubjectLister struct {
	items []models.Subject
	err   error
	lists int
}

func (f *fakeSubjectLister) List(context.Context) ([]models.Subject, error) {
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeScheduleCatalog struct {
	mu        sync.Mutex
	items     []models.Schedule
	listErr   error
	createErr error
	deleteErr error
	created   *models.Schedule
	lists     int
	creates   []models.ScheduleDraft
	deletes   []string
}

func (f *fakeScheduleCatalog) List(context.Context) ([]models.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Schedule(nil), f.items...), nil
}

func (f *fakeScheduleCatalog) Create(_ context.Context, draft models.ScheduleDraft) (*models.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, draft)
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *f.created
	f.items = append(f.items, created)
	return &created, nil
}

func (f *fakeScheduleCatalog) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	return f.deleteErr
}

type memoryBoardStore struct {
	board *models.ScheduleBoard
	saves int
}

func (m *memoryBoardStore) SaveScheduleBoard(_ context.Context, board models.ScheduleBoard) error {
	m.saves++
	m.board = &board
	return nil
}

func (m *memoryBoardStore) LoadScheduleBoard(context.Context) (models.ScheduleBoard, bool, error) {
	if m.board == nil {
		return models.ScheduleBoard{}, false, nil
	}
	return *m.board, true, nil
}
