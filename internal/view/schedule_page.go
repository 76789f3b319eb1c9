package view

import (
	"context"
	"sync"

	"github.com/noah-isme/booking-admin/internal/models"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

// ScheduleCatalog is the schedule side of the booking API.
type ScheduleCatalog interface {
	List(ctx context.Context) ([]models.Schedule, error)
	Create(ctx context.Context, draft models.ScheduleDraft) (*models.Schedule, error)
	Delete(ctx context.Context, id string) error
}

// BoardStore keeps the schedule page's local state between requests.
type BoardStore interface {
	SaveScheduleBoard(ctx context.Context, board models.ScheduleBoard) error
	LoadScheduleBoard(ctx context.Context) (models.ScheduleBoard, bool, error)
}

type teacherLister interface {
	List(ctx context.Context) ([]models.Teacher, error)
}

type subjectLister interface {
	List(ctx context.Context) ([]models.Subject, error)
}

// BoardView is the rendered state of the schedule page.
type BoardView struct {
	Teachers  Snapshot[[]models.Teacher]
	Subjects  Snapshot[[]models.Subject]
	Schedules Snapshot[[]models.Schedule]
}

// Board flattens the view to what is kept between requests. Failed collections are empty.
func (v BoardView) Board() models.ScheduleBoard {
	return models.ScheduleBoard{
		Teachers:  v.Teachers.Data,
		Subjects:  v.Subjects.Data,
		Schedules: v.Schedules.Data,
	}
}

// Failures lists the collections that could not be loaded.
func (v BoardView) Failures() []string {
	var failed []string
	if v.Teachers.Failed() {
		failed = append(failed, "professores")
	}
	if v.Subjects.Failed() {
		failed = append(failed, "disciplinas")
	}
	if v.Schedules.Failed() {
		failed = append(failed, "agendamentos")
	}
	return failed
}

func loadedBoard(board models.ScheduleBoard) BoardView {
	return BoardView{
		Teachers:  Snapshot[[]models.Teacher]{State: StateLoaded, Data: board.Teachers},
		Subjects:  Snapshot[[]models.Subject]{State: StateLoaded, Data: board.Subjects},
		Schedules: Snapshot[[]models.Schedule]{State: StateLoaded, Data: board.Schedules},
	}
}

// SchedulePage fetches teachers, subjects and schedules on mount. Unlike the catalog pages it
// never refetches after a mutation: created schedules are appended and deleted ones removed from
// the board it already holds.
type SchedulePage struct {
	schedules ScheduleCatalog
	store     BoardStore

	teacherList  *Resource[[]models.Teacher]
	subjectList  *Resource[[]models.Subject]
	scheduleList *Resource[[]models.Schedule]
}

// NewSchedulePage constructs the schedule page model.
func NewSchedulePage(teachers teacherLister, subjects subjectLister, schedules ScheduleCatalog, store BoardStore) *SchedulePage {
	return &SchedulePage{
		schedules: schedules,
		store:     store,
		teacherList: NewResource(func(ctx context.Context, _ string) ([]models.Teacher, error) {
			return teachers.List(ctx)
		}),
		subjectList: NewResource(func(ctx context.Context, _ string) ([]models.Subject, error) {
			return subjects.List(ctx)
		}),
		scheduleList: NewResource(func(ctx context.Context, _ string) ([]models.Schedule, error) {
			return schedules.List(ctx)
		}),
	}
}

// Mount runs the three fetches concurrently. Each settles on its own; one failing leaves the
// others rendered. The resulting board is saved for later mutations.
func (p *SchedulePage) Mount(ctx context.Context) (BoardView, error) {
	var (
		wg   sync.WaitGroup
		view BoardView
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		view.Teachers = p.teacherList.Load(ctx, "")
	}()
	go func() {
		defer wg.Done()
		view.Subjects = p.subjectList.Load(ctx, "")
	}()
	go func() {
		defer wg.Done()
		view.Schedules = p.scheduleList.Load(ctx, "")
	}()
	wg.Wait()

	if err := p.store.SaveScheduleBoard(ctx, view.Board()); err != nil {
		return view, err
	}
	return view, nil
}

// Current returns the saved board, mounting when nothing was saved yet.
func (p *SchedulePage) Current(ctx context.Context) (BoardView, error) {
	board, ok, err := p.store.LoadScheduleBoard(ctx)
	if err != nil {
		return BoardView{}, err
	}
	if !ok {
		return p.Mount(ctx)
	}
	return loadedBoard(board), nil
}

// Create posts draft and appends the stored schedule to the board. With no saved board the page
// is mounted instead, which already includes the new schedule.
func (p *SchedulePage) Create(ctx context.Context, draft models.ScheduleDraft) (BoardView, *models.Schedule, error) {
	created, err := p.schedules.Create(ctx, draft)
	if err != nil {
		view, viewErr := p.Current(ctx)
		if viewErr != nil {
			return view, nil, viewErr
		}
		return view, nil, err
	}
	if created == nil {
		created = &models.Schedule{}
	}

	board, ok, err := p.store.LoadScheduleBoard(ctx)
	if err != nil {
		return BoardView{}, created, err
	}
	if !ok {
		view, err := p.Mount(ctx)
		return view, created, err
	}
	*created = resolveSchedule(board, *created, draft)
	board.Schedules = append(board.Schedules, *created)
	if err := p.store.SaveScheduleBoard(ctx, board); err != nil {
		return loadedBoard(board), created, err
	}
	return loadedBoard(board), created, nil
}

// resolveSchedule fills in names the API left out of the created schedule from the board's selectors.
func resolveSchedule(board models.ScheduleBoard, schedule models.Schedule, draft models.ScheduleDraft) models.Schedule {
	if schedule.Teacher.ID.IsZero() {
		schedule.Teacher.ID = models.ID(draft.TeacherID)
	}
	if schedule.Subject.ID.IsZero() {
		schedule.Subject.ID = models.ID(draft.SubjectID)
	}
	if schedule.StartTime == "" {
		schedule.StartTime = draft.StartTime
	}
	if schedule.EndTime == "" {
		schedule.EndTime = draft.EndTime
	}
	if schedule.Teacher.Name == "" {
		for _, teacher := range board.Teachers {
			if teacher.ID == schedule.Teacher.ID {
				schedule.Teacher.Name = teacher.Name
				break
			}
		}
	}
	if schedule.Subject.Name == "" {
		for _, subject := range board.Subjects {
			if subject.ID == schedule.Subject.ID {
				schedule.Subject.Name = subject.Name
				break
			}
		}
	}
	return schedule
}

// Delete removes id remotely and drops only that row from the board.
func (p *SchedulePage) Delete(ctx context.Context, id string) (BoardView, error) {
	if id == "" {
		view, err := p.Current(ctx)
		if err != nil {
			return view, err
		}
		return view, appErrors.Clone(appErrors.ErrValidation, "schedule id is required")
	}
	if err := p.schedules.Delete(ctx, id); err != nil {
		view, viewErr := p.Current(ctx)
		if viewErr != nil {
			return view, viewErr
		}
		return view, err
	}

	board, ok, err := p.store.LoadScheduleBoard(ctx)
	if err != nil {
		return BoardView{}, err
	}
	if !ok {
		return p.Mount(ctx)
	}
	kept := make([]models.Schedule, 0, len(board.Schedules))
	for _, schedule := range board.Schedules {
		if schedule.ID.String() != id {
			kept = append(kept, schedule)
		}
	}
	board.Schedules = kept
	if err := p.store.SaveScheduleBoard(ctx, board); err != nil {
		return loadedBoard(board), err
	}
	return loadedBoard(board), nil
}

// Close drops in-flight fetches.
func (p *SchedulePage) Close() {
	p.teacherList.Close()
	p.subjectList.Close()
	p.scheduleList.Close()
}
