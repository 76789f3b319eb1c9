package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/booking-admin/internal/middleware"
	"github.com/noah-isme/booking-admin/internal/models"
	"github.com/noah-isme/booking-admin/internal/ui"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

type sessionState interface {
	Status(ctx context.Context) models.SessionStatus
	Flash(ctx context.Context, notification *models.Notification) error
	TakeFlash(ctx context.Context) *models.Notification
	BeginMutation(ctx context.Context, scope string) (func(), error)
}

// Presenter renders pages inside the shared layout and carries notifications across redirects.
type Presenter struct {
	sessions             sessionState
	notificationDuration time.Duration
}

// NewPresenter constructs a Presenter; toasts stay up for notificationDuration (5s when unset).
func NewPresenter(sessions sessionState, notificationDuration time.Duration) *Presenter {
	if notificationDuration <= 0 {
		notificationDuration = 5 * time.Second
	}
	return &Presenter{sessions: sessions, notificationDuration: notificationDuration}
}

// Render writes page with data. Without an explicit notification the pending flash is shown.
func (p *Presenter) Render(c *gin.Context, status int, page, title string, data interface{}, notification *models.Notification) {
	ctx := c.Request.Context()
	if notification == nil {
		notification = p.sessions.TakeFlash(ctx)
	}
	c.Header("Cache-Control", "no-store")
	c.HTML(status, page, ui.Page{
		Title:              title,
		CurrentPath:        middleware.CurrentPath(c),
		HideChrome:         middleware.HideChrome(c),
		Session:            p.sessions.Status(ctx),
		Notification:       notification,
		NotificationMillis: p.notificationDuration.Milliseconds(),
		Data:               data,
	})
}

// Redirect stores notification for the next page and answers 303 See Other.
func (p *Presenter) Redirect(c *gin.Context, location string, notification *models.Notification) {
	if err := p.sessions.Flash(c.Request.Context(), notification); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusSeeOther, location)
}

// Begin claims the submitted form for this session until release is called. A second submit of
// the same form while the first is in flight gets ErrBusy and must not reach the booking API.
func (p *Presenter) Begin(c *gin.Context) (release func(), err error) {
	return p.sessions.BeginMutation(c.Request.Context(), c.Request.Method+" "+c.Request.URL.Path)
}

// NotFound renders the error page with 404.
func (p *Presenter) NotFound(c *gin.Context) {
	p.Render(c, http.StatusNotFound, ui.PageError, "Página não encontrada", "O endereço solicitado não existe.", nil)
}

// describe turns an error into toast text.
func describe(err error) string {
	if err == nil {
		return ""
	}
	return appErrors.FromError(err).Message
}

// refusal is the toast for a submit that was not attempted.
func refusal(err error) *models.Notification {
	if errors.Is(err, appErrors.ErrBusy) {
		return models.Failure("Operação em andamento", "Aguarde a conclusão da solicitação anterior.")
	}
	return models.Failure("Não foi possível concluir a operação", describe(err))
}

// loadFailure is the toast for a list that could not be fetched.
func loadFailure(what string, err error) *models.Notification {
	return models.Failure("Erro ao carregar "+what, describe(err))
}
