package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/booking-admin/internal/models"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

// SessionRepository persists per-session key/value pairs.
type SessionRepository interface {
	Get(ctx context.Context, sid, field string) (string, error)
	Set(ctx context.Context, sid string, values map[string]string) error
	Delete(ctx context.Context, sid string, fields ...string) error
	Claim(ctx context.Context, sid, name string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, sid, name string) error
	Ping(ctx context.Context) error
}

// mutationTTL bounds a claim whose request never released it. It outlasts the booking API timeout.
const mutationTTL = 30 * time.Second

// SessionObserver counts session store operations.
type SessionObserver interface {
	ObserveSessionOperation(op string, hit bool)
}

type sessionIDKey struct{}

// WithSessionID binds the browser session id to ctx.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sid)
}

// SessionIDFromContext returns the session id bound by WithSessionID, or "".
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	sid, _ := ctx.Value(sessionIDKey{}).(string)
	return sid
}

// SessionService is the only place session keys are read or written.
type SessionService struct {
	repo      SessionRepository
	observer  SessionObserver
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo SessionRepository, observer SessionObserver, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, observer: observer, validator: validate, logger: logger, now: time.Now}
}

// Token returns the bearer token of the current session. A session without a token yields
// ErrMissingToken; it is read from the store on every call.
func (s *SessionService) Token(ctx context.Context) (string, error) {
	sid := SessionIDFromContext(ctx)
	if sid == "" {
		return "", appErrors.ErrMissingToken
	}
	for _, key := range []string{models.SessionKeyToken, models.SessionKeyAccessToken} {
		value, err := s.get(ctx, sid, key)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
	}
	return "", appErrors.ErrMissingToken
}

// SetSession stores the credentials under every key the console reads.
func (s *SessionService) SetSession(ctx context.Context, creds models.Credentials) error {
	sid := SessionIDFromContext(ctx)
	if sid == "" {
		return appErrors.Clone(appErrors.ErrInternal, "no session bound to request")
	}
	values := map[string]string{
		models.SessionKeyToken:       creds.Token,
		models.SessionKeyAccessToken: creds.Token,
		models.SessionKeyPermission:  creds.Permission,
	}
	if creds.Expiration != nil {
		values[models.SessionKeyExpiration] = creds.Expiration.UTC().Format(time.RFC3339)
	}
	if err := s.set(ctx, sid, values); err != nil {
		return err
	}
	if creds.Expiration == nil {
		// a previous login may have left an expiration behind
		return s.delete(ctx, sid, models.SessionKeyExpiration)
	}
	return nil
}

// ClearSession removes every credential key, whatever the prior state.
func (s *SessionService) ClearSession(ctx context.Context) error {
	sid := SessionIDFromContext(ctx)
	if sid == "" {
		return nil
	}
	keys := append([]string{}, models.CredentialKeys...)
	keys = append(keys, models.SessionKeyScheduleBoard)
	return s.delete(ctx, sid, keys...)
}

// Status summarises the current session for the layout.
func (s *SessionService) Status(ctx context.Context) models.SessionStatus {
	status := models.SessionStatus{}
	token, err := s.Token(ctx)
	if err != nil || token == "" {
		return status
	}
	status.Authenticated = true
	sid := SessionIDFromContext(ctx)
	if raw, err := s.get(ctx, sid, models.SessionKeyExpiration); err == nil && raw != "" {
		if exp, err := time.Parse(time.RFC3339, raw); err == nil {
			status.Expiration = &exp
		}
	}
	if permission, err := s.get(ctx, sid, models.SessionKeyPermission); err == nil {
		status.Permission = permission
	}
	return status
}

// Login validates the pasted token and stores it. JWTs are decoded without verification to read
// the expiry and permission claims; expired ones are refused.
func (s *SessionService) Login(ctx context.Context, req models.LoginRequest) (models.Credentials, error) {
	req.Token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(req.Token), "Bearer "))
	if err := s.validator.Struct(req); err != nil {
		return models.Credentials{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "token is required")
	}

	creds := models.Credentials{Token: req.Token}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(req.Token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			expiration := exp.Time.UTC()
			if !expiration.After(s.now()) {
				return models.Credentials{}, appErrors.Clone(appErrors.ErrUnauthorized, "token has expired")
			}
			creds.Expiration = &expiration
		}
		creds.Permission = permissionClaim(claims)
	}

	if err := s.SetSession(ctx, creds); err != nil {
		return models.Credentials{}, err
	}
	s.logger.Info("session login", zap.String("permission", creds.Permission), zap.Bool("expires", creds.Expiration != nil))
	return creds, nil
}

func permissionClaim(claims jwt.MapClaims) string {
	for _, key := range []string{"permission", "role"} {
		if value, ok := claims[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// Flash stores a one-shot notification shown on the next render.
func (s *SessionService) Flash(ctx context.Context, notification *models.Notification) error {
	sid := SessionIDFromContext(ctx)
	if sid == "" || notification == nil {
		return nil
	}
	raw, err := json.Marshal(notification)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode notification")
	}
	return s.set(ctx, sid, map[string]string{models.SessionKeyFlash: string(raw)})
}

// TakeFlash returns and clears the pending notification, if any.
func (s *SessionService) TakeFlash(ctx context.Context) *models.Notification {
	sid := SessionIDFromContext(ctx)
	if sid == "" {
		return nil
	}
	raw, err := s.get(ctx, sid, models.SessionKeyFlash)
	if err != nil || raw == "" {
		return nil
	}
	if err := s.delete(ctx, sid, models.SessionKeyFlash); err != nil {
		s.logger.Warn("failed to clear flash", zap.Error(err))
	}
	var notification models.Notification
	if err := json.Unmarshal([]byte(raw), &notification); err != nil {
		s.logger.Warn("discarding malformed flash", zap.Error(err))
		return nil
	}
	return &notification
}

// SaveScheduleBoard keeps the schedule page's local state between requests.
func (s *SessionService) SaveScheduleBoard(ctx context.Context, board models.ScheduleBoard) error {
	sid := SessionIDFromContext(ctx)
	if sid == "" {
		return nil
	}
	raw, err := json.Marshal(board)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode schedule board")
	}
	return s.set(ctx, sid, map[string]string{models.SessionKeyScheduleBoard: string(raw)})
}

// LoadScheduleBoard returns the saved board; ok is false when none was saved.
func (s *SessionService) LoadScheduleBoard(ctx context.Context) (board models.ScheduleBoard, ok bool, err error) {
	sid := SessionIDFromContext(ctx)
	if sid == "" {
		return board, false, nil
	}
	raw, err := s.get(ctx, sid, models.SessionKeyScheduleBoard)
	if err != nil || raw == "" {
		return board, false, err
	}
	if err := json.Unmarshal([]byte(raw), &board); err != nil {
		s.logger.Warn("discarding malformed schedule board", zap.Error(err))
		return models.ScheduleBoard{}, false, nil
	}
	return board, true, nil
}

// BeginMutation claims scope for the current session so that a resubmitted form does not reach the
// booking API twice. While the claim is held, another BeginMutation for the same scope returns
// ErrBusy. Call release once the mutation settles.
func (s *SessionService) BeginMutation(ctx context.Context, scope string) (release func(), err error) {
	sid := SessionIDFromContext(ctx)
	if sid == "" {
		return func() {}, nil
	}
	claimed, err := s.repo.Claim(ctx, sid, scope, mutationTTL)
	if err != nil {
		s.observe("claim_error", false)
		s.logger.Error("session claim failed", zap.String("scope", scope), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "session store unavailable")
	}
	s.observe("claim", claimed)
	if !claimed {
		s.logger.Info("mutation already in flight", zap.String("scope", scope))
		return nil, appErrors.ErrBusy
	}
	return func() {
		if err := s.repo.Release(context.WithoutCancel(ctx), sid, scope); err != nil {
			s.logger.Warn("session release failed", zap.String("scope", scope), zap.Error(err))
		}
	}, nil
}

// Ping checks the backing store.
func (s *SessionService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// get maps a miss to "" so callers only see store failures.
func (s *SessionService) get(ctx context.Context, sid, key string) (string, error) {
	value, err := s.repo.Get(ctx, sid, key)
	if err != nil {
		if errors.Is(err, appErrors.ErrSessionMiss) {
			s.observe("get", false)
			return "", nil
		}
		s.observe("get_error", false)
		s.logger.Error("session read failed", zap.String("key", key), zap.Error(err))
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "session store unavailable")
	}
	s.observe("get", true)
	return value, nil
}

func (s *SessionService) set(ctx context.Context, sid string, values map[string]string) error {
	s.observe("set", true)
	if err := s.repo.Set(ctx, sid, values); err != nil {
		s.logger.Error("session write failed", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "session store unavailable")
	}
	return nil
}

func (s *SessionService) delete(ctx context.Context, sid string, keys ...string) error {
	s.observe("delete", true)
	if err := s.repo.Delete(ctx, sid, keys...); err != nil {
		s.logger.Error("session delete failed", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "session store unavailable")
	}
	return nil
}

func (s *SessionService) observe(op string, hit bool) {
	if s.observer != nil {
		s.observer.ObserveSessionOperation(op, hit)
	}
}
