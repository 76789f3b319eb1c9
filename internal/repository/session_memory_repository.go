package repository

import (
	"context"
	"sync"
	"time"

	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

type memorySession struct {
	values    map[string]string
	expiresAt time.Time
}

// MemorySessionRepository is the single-process session store used when Redis is not configured.
type MemorySessionRepository struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*memorySession
	claims   map[string]time.Time
}

// NewMemorySessionRepository constructs an in-memory store; ttl <= 0 disables expiry.
func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*memorySession),
		claims:   make(map[string]time.Time),
	}
}

func (r *MemorySessionRepository) Get(_ context.Context, sid, field string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.live(sid)
	if session == nil {
		return "", appErrors.ErrSessionMiss
	}
	value, ok := session.values[field]
	if !ok {
		return "", appErrors.ErrSessionMiss
	}
	return value, nil
}

func (r *MemorySessionRepository) Set(_ context.Context, sid string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.live(sid)
	if session == nil {
		session = &memorySession{values: make(map[string]string, len(values))}
		r.sessions[sid] = session
	}
	for k, v := range values {
		session.values[k] = v
	}
	if r.ttl > 0 {
		session.expiresAt = r.now().Add(r.ttl)
	}
	return nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, sid string, fields ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.live(sid)
	if session == nil {
		return nil
	}
	for _, field := range fields {
		delete(session.values, field)
	}
	return nil
}

// Claim marks name as held for sid until Release or ttl, whichever comes first. It reports false
// when the mark is already held.
func (r *MemorySessionRepository) Claim(_ context.Context, sid, name string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := claimKey(sid, name)
	now := r.now()
	if until, ok := r.claims[key]; ok && now.Before(until) {
		return false, nil
	}
	r.claims[key] = now.Add(ttl)
	return true, nil
}

func (r *MemorySessionRepository) Release(_ context.Context, sid, name string) error {
	r.mu.Lock()
	delete(r.claims, claimKey(sid, name))
	r.mu.Unlock()
	return nil
}

func claimKey(sid, name string) string { return sid + "\x00" + name }

// Ping always succeeds.
func (r *MemorySessionRepository) Ping(context.Context) error { return nil }

// Sweep drops expired sessions and stale claims. It returns how many sessions were removed.
func (r *MemorySessionRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	now := r.now()
	for sid, session := range r.sessions {
		if r.expired(session, now) {
			delete(r.sessions, sid)
			removed++
		}
	}
	for key, until := range r.claims {
		if !now.Before(until) {
			delete(r.claims, key)
		}
	}
	return removed
}

// StartJanitor sweeps expired sessions every interval until ctx is done.
func (r *MemorySessionRepository) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 || r.ttl <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Sweep()
			}
		}
	}()
}

// live returns the session if present and not expired. Caller holds mu.
func (r *MemorySessionRepository) live(sid string) *memorySession {
	session, ok := r.sessions[sid]
	if !ok {
		return nil
	}
	if r.expired(session, r.now()) {
		delete(r.sessions, sid)
		return nil
	}
	return session
}

func (r *MemorySessionRepository) expired(session *memorySession, now time.Time) bool {
	return r.ttl > 0 && !session.expiresAt.IsZero() && now.After(session.expiresAt)
}
