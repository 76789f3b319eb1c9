package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/booking-admin/internal/models"
	"github.com/noah-isme/booking-admin/internal/ui"
	"github.com/noah-isme/booking-admin/internal/view"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

// CatalogOptions describes one list-and-create page.
type CatalogOptions[T any] struct {
	BasePath string
	Page     string
	Title    string
	// Noun names the collection in load-failure toasts.
	Noun   string
	Labels view.Labels
	// WithID returns item carrying id; path ids win over submitted form ids.
	WithID func(item T, id models.ID) T
}

// CatalogData is what the list templates render.
type CatalogData[T any, D any] struct {
	Items      []T
	Loading    bool
	Failed     bool
	CreateOpen bool
	Draft      D
	Detail     view.DetailView[T]
}

// CatalogHandler serves a list page with its create and detail dialogs. Every successful
// mutation redirects back to the list, which mounts and fetches the whole list again.
type CatalogHandler[T any, D any] struct {
	catalog   view.Catalog[T, D]
	presenter *Presenter
	opts      CatalogOptions[T]
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler[T any, D any](catalog view.Catalog[T, D], presenter *Presenter, opts CatalogOptions[T]) *CatalogHandler[T, D] {
	return &CatalogHandler[T, D]{catalog: catalog, presenter: presenter, opts: opts}
}

// Register mounts the routes under BasePath.
func (h *CatalogHandler[T, D]) Register(r gin.IRoutes) {
	r.GET(h.opts.BasePath, h.Index)
	r.POST(h.opts.BasePath, h.Create)
	r.POST(h.opts.BasePath+"/:id", h.Update)
	r.POST(h.opts.BasePath+"/:id/delete", h.Delete)
}

// notifier keeps the last toast a dialog produced and whether it asked the page to refresh.
type notifier struct {
	notification *models.Notification
	refreshed    bool
}

func (n *notifier) hooks() view.Hooks {
	return view.Hooks{
		Refresh: func() { n.refreshed = true },
		Notify:  func(note *models.Notification) { n.notification = note },
	}
}

// Index mounts the page. ?create=1 opens the create dialog, ?detail=<id> the detail dialog.
func (h *CatalogHandler[T, D]) Index(c *gin.Context) {
	page := view.NewCatalogPage(h.catalog, h.opts.Labels, view.Hooks{})
	defer page.Close()

	if c.Query("create") != "" {
		page.Create.Open()
	}
	if id := c.Query("detail"); id != "" {
		page.Detail.Open(c.Request.Context(), id)
	}
	h.render(c, http.StatusOK, page, nil)
}

// Create submits the create dialog.
func (h *CatalogHandler[T, D]) Create(c *gin.Context) {
	var draft D
	if err := c.ShouldBind(&draft); err != nil {
		h.presenter.Render(c, http.StatusBadRequest, ui.PageError, h.opts.Title, "Formulário inválido.", nil)
		return
	}

	events := &notifier{}
	page := view.NewCatalogPage(h.catalog, h.opts.Labels, events.hooks())
	defer page.Close()

	release, err := h.presenter.Begin(c)
	if err != nil {
		h.refuse(c, page, err)
		return
	}
	defer release()

	page.Create.Open()
	page.Create.SetDraft(draft)
	err = page.Create.Submit(c.Request.Context())
	h.settle(c, page, events, err)
}

// Update saves the detail dialog with the submitted values.
func (h *CatalogHandler[T, D]) Update(c *gin.Context) {
	id := c.Param("id")
	var item T
	if err := c.ShouldBind(&item); err != nil {
		h.presenter.Render(c, http.StatusBadRequest, ui.PageError, h.opts.Title, "Formulário inválido.", nil)
		return
	}
	if h.opts.WithID != nil {
		item = h.opts.WithID(item, models.ID(id))
	}

	events := &notifier{}
	page := view.NewCatalogPage(h.catalog, h.opts.Labels, events.hooks())
	defer page.Close()

	release, err := h.presenter.Begin(c)
	if err != nil {
		h.refuse(c, page, err)
		return
	}
	defer release()

	page.Detail.Edit(id, item)
	err = page.Detail.Save(c.Request.Context())
	h.settle(c, page, events, err)
}

// Delete removes the item shown in the detail dialog. A failure other than not found reopens the
// dialog with a fresh fetch; a missing item leaves the dialog in its load-failed state.
func (h *CatalogHandler[T, D]) Delete(c *gin.Context) {
	id := c.Param("id")
	events := &notifier{}
	page := view.NewCatalogPage(h.catalog, h.opts.Labels, events.hooks())
	defer page.Close()

	release, err := h.presenter.Begin(c)
	if err != nil {
		h.refuse(c, page, err)
		return
	}
	defer release()

	var item T
	if h.opts.WithID != nil {
		item = h.opts.WithID(item, models.ID(id))
	}
	page.Detail.Edit(id, item)
	err = page.Detail.Delete(c.Request.Context())
	if err != nil && !errors.Is(err, appErrors.ErrNotFound) {
		page.Detail.Open(c.Request.Context(), id)
	}
	h.settle(c, page, events, err)
}

// settle answers a submitted dialog: a refresh signal becomes a redirect so the list is fetched
// again, anything else re-renders the page with the dialog as it stands.
func (h *CatalogHandler[T, D]) settle(c *gin.Context, page *view.CatalogPage[T, D], events *notifier, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	if events.refreshed {
		h.presenter.Redirect(c, h.opts.BasePath, events.notification)
		return
	}
	h.render(c, http.StatusOK, page, events.notification)
}

// refuse renders the list without submitting when the form could not be claimed.
func (h *CatalogHandler[T, D]) refuse(c *gin.Context, page *view.CatalogPage[T, D], err error) {
	_ = c.Error(err)
	h.render(c, appErrors.FromError(err).Status, page, refusal(err))
}

func (h *CatalogHandler[T, D]) render(c *gin.Context, status int, page *view.CatalogPage[T, D], notification *models.Notification) {
	snapshot := page.Mount(c.Request.Context())
	if notification == nil && snapshot.Failed() {
		notification = loadFailure(h.opts.Noun, snapshot.Err)
	}
	data := CatalogData[T, D]{
		Items:      snapshot.Data,
		Loading:    snapshot.Loading(),
		Failed:     snapshot.Failed(),
		CreateOpen: page.Create.IsOpen(),
		Draft:      page.Create.Draft(),
		Detail:     page.Detail.View(),
	}
	h.presenter.Render(c, status, h.opts.Page, h.opts.Title, data, notification)
}

// SubjectOptions configures the /discipline page.
func SubjectOptions() CatalogOptions[models.Subject] {
	return CatalogOptions[models.Subject]{
		BasePath: "/discipline",
		Page:     ui.PageDisciplines,
		Title:    "Disciplinas",
		Noun:     "disciplinas",
		Labels:   view.SubjectLabels,
		WithID: func(item models.Subject, id models.ID) models.Subject {
			item.ID = id
			return item
		},
	}
}

// TeacherOptions configures the /teacher page.
func TeacherOptions() CatalogOptions[models.Teacher] {
	return CatalogOptions[models.Teacher]{
		BasePath: "/teacher",
		Page:     ui.PageTeachers,
		Title:    "Professores",
		Noun:     "professores",
		Labels:   view.TeacherLabels,
		WithID: func(item models.Teacher, id models.ID) models.Teacher {
			item.ID = id
			return item
		},
	}
}
