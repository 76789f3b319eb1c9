package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/booking-admin/internal/models"
	"github.com/noah-isme/booking-admin/internal/ui"
	"github.com/noah-isme/booking-admin/internal/view"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

type teacherLister interface {
	List(ctx context.Context) ([]models.Teacher, error)
}

type subjectLister interface {
	List(ctx context.Context) ([]models.Subject, error)
}

// ScheduleData is what the schedule template renders.
type ScheduleData struct {
	Teachers  []models.Teacher
	Subjects  []models.Subject
	Schedules []models.Schedule
	Form      models.ScheduleDraft
	Failed    bool
}

// ScheduleHandler serves the schedule board at /. Mutations update the board kept in the session
// and render it directly instead of refetching.
type ScheduleHandler struct {
	teachers  teacherLister
	subjects  subjectLister
	schedules view.ScheduleCatalog
	boards    view.BoardStore
	presenter *Presenter
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(teachers teacherLister, subjects subjectLister, schedules view.ScheduleCatalog, boards view.BoardStore, presenter *Presenter) *ScheduleHandler {
	return &ScheduleHandler{teachers: teachers, subjects: subjects, schedules: schedules, boards: boards, presenter: presenter}
}

// Register mounts the schedule routes.
func (h *ScheduleHandler) Register(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.POST("/schedule", h.Create)
	r.POST("/schedule/:id/delete", h.Delete)
}

func (h *ScheduleHandler) page() *view.SchedulePage {
	return view.NewSchedulePage(h.teachers, h.subjects, h.schedules, h.boards)
}

// Index mounts the board, fetching the three collections concurrently.
func (h *ScheduleHandler) Index(c *gin.Context) {
	page := h.page()
	defer page.Close()

	board, err := page.Mount(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
	}
	var notification *models.Notification
	if failed := board.Failures(); len(failed) > 0 {
		notification = loadFailure(joinPT(failed), firstError(board))
	}
	h.render(c, board, models.ScheduleDraft{}, notification)
}

// Create posts the form and appends the new schedule to the board.
func (h *ScheduleHandler) Create(c *gin.Context) {
	var draft models.ScheduleDraft
	if err := c.ShouldBind(&draft); err != nil {
		h.presenter.Render(c, http.StatusBadRequest, ui.PageError, "Agendamento", "Formulário inválido.", nil)
		return
	}

	page := h.page()
	defer page.Close()

	release, err := h.presenter.Begin(c)
	if err != nil {
		h.refuse(c, page, draft, err)
		return
	}
	defer release()

	board, _, err := page.Create(c.Request.Context(), draft)
	if err != nil {
		_ = c.Error(err)
		h.render(c, board, draft, models.Failure("Erro ao criar agendamento", describe(err)))
		return
	}
	h.render(c, board, models.ScheduleDraft{}, models.Success("Agendamento criado com sucesso", ""))
}

// Delete removes one schedule and drops its row from the board.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	page := h.page()
	defer page.Close()

	release, err := h.presenter.Begin(c)
	if err != nil {
		h.refuse(c, page, models.ScheduleDraft{}, err)
		return
	}
	defer release()

	board, err := page.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		h.render(c, board, models.ScheduleDraft{}, models.Failure("Erro ao excluir agendamento", describe(err)))
		return
	}
	h.render(c, board, models.ScheduleDraft{}, models.Success("Agendamento excluído com sucesso", ""))
}

// refuse shows the board as it stands when the form could not be claimed.
func (h *ScheduleHandler) refuse(c *gin.Context, page *view.SchedulePage, form models.ScheduleDraft, err error) {
	_ = c.Error(err)
	board, loadErr := page.Current(c.Request.Context())
	if loadErr != nil {
		_ = c.Error(loadErr)
	}
	h.renderStatus(c, appErrors.FromError(err).Status, board, form, refusal(err))
}

func (h *ScheduleHandler) render(c *gin.Context, board view.BoardView, form models.ScheduleDraft, notification *models.Notification) {
	h.renderStatus(c, http.StatusOK, board, form, notification)
}

func (h *ScheduleHandler) renderStatus(c *gin.Context, status int, board view.BoardView, form models.ScheduleDraft, notification *models.Notification) {
	data := ScheduleData{
		Teachers:  board.Teachers.Data,
		Subjects:  board.Subjects.Data,
		Schedules: board.Schedules.Data,
		Form:      form,
		Failed:    board.Schedules.Failed(),
	}
	h.presenter.Render(c, status, ui.PageSchedules, "Agendamento", data, notification)
}

func firstError(board view.BoardView) error {
	for _, err := range []error{board.Teachers.Err, board.Subjects.Err, board.Schedules.Err} {
		if err != nil {
			return err
		}
	}
	return nil
}

// joinPT joins names the Portuguese way: "a, b e c".
func joinPT(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	out := items[0]
	for _, item := range items[1 : len(items)-1] {
		out += ", " + item
	}
	return out + " e " + items[len(items)-1]
}
