package session

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the inactivity window after which a session expires.
const DefaultTimeout = 30 * time.Minute

// Session is a freshness marker for one logical client. It is independent
// of tokens: a token proves identity, a session proves recent activity.
// Each client owns its Session value (typically carried in a request-scoped
// context); sessions are never shared between clients and need no locking.
type Session struct {
	id           string
	lastActivity time.Time
	window       time.Duration
	active       bool
	now          func() time.Time
}

// Start allocates a new session with a fresh opaque identifier. A
// non-positive window falls back to DefaultTimeout.
func Start(window time.Duration) *Session {
	if window <= 0 {
		window = DefaultTimeout
	}

	s := &Session{
		id:     uuid.NewString(),
		window: window,
		active: true,
		now:    time.Now,
	}
	s.lastActivity = s.now()

	return s
}

// ID returns the opaque session identifier, or "" once the session ended.
func (s *Session) ID() string {
	if s == nil || !s.active {
		return ""
	}
	return s.id
}

// Touch refreshes the activity timestamp. It is a no-op on an ended
// session; callers are expected to Touch only after Valid reports true.
func (s *Session) Touch() {
	if s == nil || !s.active {
		return
	}
	s.lastActivity = s.now()
}

// Valid reports whether the session exists and its inactivity gap is still
// within the window. An expired session behaves like no session at all.
func (s *Session) Valid() bool {
	if s == nil || !s.active {
		return false
	}
	return s.now().Sub(s.lastActivity) <= s.window
}

// End clears all session state unconditionally. Used for logout and forced
// invalidation; a new Start is required afterwards.
func (s *Session) End() {
	if s == nil {
		return
	}
	s.id = ""
	s.lastActivity = time.Time{}
	s.active = false
}
