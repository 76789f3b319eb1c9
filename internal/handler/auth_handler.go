package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/booking-admin/internal/middleware"
	"github.com/noah-isme/booking-admin/internal/models"
	"github.com/noah-isme/booking-admin/internal/ui"
)

type authSessions interface {
	Login(ctx context.Context, req models.LoginRequest) (models.Credentials, error)
	ClearSession(ctx context.Context) error
}

// AuthHandler handles the login form and logout.
type AuthHandler struct {
	sessions  authSessions
	presenter *Presenter
	logger    *zap.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(sessions authSessions, presenter *Presenter, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{sessions: sessions, presenter: presenter, logger: logger}
}

// Register mounts /login and /logout.
func (h *AuthHandler) Register(r gin.IRoutes) {
	r.GET(middleware.LoginPath, h.LoginForm)
	r.POST(middleware.LoginPath, h.Login)
	r.POST("/logout", h.Logout)
}

// LoginForm renders the token form without navigation chrome.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.presenter.Render(c, http.StatusOK, ui.PageLogin, "Login", nil, nil)
}

// Login stores the pasted token in the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(err)
		h.presenter.Render(c, http.StatusBadRequest, ui.PageLogin, "Login", nil, models.Failure("Formulário inválido.", ""))
		return
	}

	if _, err := h.sessions.Login(c.Request.Context(), req); err != nil {
		_ = c.Error(err)
		h.presenter.Render(c, http.StatusOK, ui.PageLogin, "Login", nil, models.Failure("Não foi possível entrar", describe(err)))
		return
	}
	h.presenter.Redirect(c, "/", models.Success("Sessão iniciada", ""))
}

// Logout clears the credential keys whatever their state and sends the browser to /login.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.ClearSession(c.Request.Context()); err != nil {
		h.logger.Error("failed to clear session", zap.String("session", middleware.SessionID(c)), zap.Error(err))
		_ = c.Error(err)
	}
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
