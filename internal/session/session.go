// Package session maps browser cookies to form controllers.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/langextract/internal/form"
)

const (
	// CookieName is the cookie carrying the session ID.
	CookieName = "langextract_session"

	// DefaultTTL is how long an idle session is kept.
	DefaultTTL = 30 * time.Minute

	// DefaultMaxSessions bounds the number of live sessions.
	DefaultMaxSessions = 1000
)

// Session is one browser's form.
type Session struct {
	ID   string
	Form *form.Controller

	lastSeen time.Time
}

// Store holds sessions in memory. It is safe for concurrent use.
type Store struct {
	ttl     time.Duration
	max     int
	newForm func() *form.Controller
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
// newForm builds the controller for each new session.
func NewStore(ttl time.Duration, newForm func() *form.Controller) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:      ttl,
		max:      DefaultMaxSessions,
		newForm:  newForm,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// TTL returns the idle timeout.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// SetMaxSessions changes the session limit. Zero or less means no limit.
func (s *Store) SetMaxSessions(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.max = n
}

// Get returns the session with the given ID and marks it as seen.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess, true
}

// Create starts a new session with a fresh form. When the store is full,
// expired sessions are dropped first, then the least recently seen idle one.
// Sessions with a request in flight are never evicted, so the limit can be
// exceeded while all of them are loading.
func (s *Store) Create() *Session {
	sess := &Session{
		ID:       uuid.New().String(),
		Form:     s.newForm(),
		lastSeen: s.now(),
	}

	s.mu.Lock()
	if s.max > 0 && len(s.sessions) >= s.max {
		s.evictLocked(sess.lastSeen)
	}
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *Store) evictLocked(now time.Time) {
	if s.sweepLocked(now) > 0 && len(s.sessions) < s.max {
		return
	}
	var oldest *Session
	for _, sess := range s.sessions {
		if sess.Form.State() == form.Loading {
			continue
		}
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	if oldest != nil {
		delete(s.sessions, oldest.ID)
	}
}

// GetOrCreate returns the session for id, creating one when id is unknown.
// created reports whether a new session was started.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if sess, ok := s.Get(id); ok {
		return sess, false
	}
	return s.Create(), true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions idle since before now minus the TTL and returns
// how many were removed. Sessions with a request in flight are kept.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(now)
}

func (s *Store) sweepLocked(now time.Time) int {
	cutoff := now.Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.After(cutoff) {
			continue
		}
		if sess.Form.State() == form.Loading {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
// onSweep, when non-nil, is called with the number removed by each sweep.
func (s *Store) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n := s.Sweep(now)
			if onSweep != nil {
				onSweep(n)
			}
		}
	}
}

// IDFromRequest returns the session ID carried by r, or "".
func IDFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetCookie writes the session cookie.
func SetCookie(w http.ResponseWriter, id string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

type sessionKey struct{}

// WithSession returns a context carrying sess.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// FromContext returns the session attached to ctx, or nil.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionKey{}).(*Session)
	return sess
}
