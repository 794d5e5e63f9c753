package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func startWithClock(window time.Duration) (*Session, *fakeClock) {
	clock := &fakeClock{current: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)}
	s := Start(window)
	s.now = clock.now
	s.lastActivity = clock.current
	return s, clock
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("valid immediately after start", func(t *testing.T) {
		s, _ := startWithClock(DefaultTimeout)
		require.True(t, s.Valid())
		require.NotEmpty(t, s.ID())
	})

	t.Run("touch keeps the session alive past the original window", func(t *testing.T) {
		s, clock := startWithClock(30 * time.Minute)

		for i := 0; i < 4; i++ {
			clock.advance(20 * time.Minute)
			require.True(t, s.Valid())
			s.Touch()
		}

		require.True(t, s.Valid())
	})

	t.Run("expires once the gap exceeds the window", func(t *testing.T) {
		s, clock := startWithClock(30 * time.Minute)

		clock.advance(31 * time.Minute)
		require.False(t, s.Valid())
	})

	t.Run("a gap of exactly the window is still valid", func(t *testing.T) {
		s, clock := startWithClock(30 * time.Minute)

		clock.advance(30 * time.Minute)
		require.True(t, s.Valid())
	})

	t.Run("end clears all state", func(t *testing.T) {
		s, _ := startWithClock(30 * time.Minute)

		s.End()
		require.False(t, s.Valid())
		require.Empty(t, s.ID())

		// Touch after End must not resurrect the session.
		s.Touch()
		require.False(t, s.Valid())
	})

	t.Run("ending an expired session is allowed", func(t *testing.T) {
		s, clock := startWithClock(30 * time.Minute)

		clock.advance(time.Hour)
		require.False(t, s.Valid())
		s.End()
		require.False(t, s.Valid())
	})

	t.Run("nil session is never valid", func(t *testing.T) {
		var s *Session
		require.False(t, s.Valid())
		require.Empty(t, s.ID())
		s.Touch()
		s.End()
	})
}

func TestSessionIDsAreUnique(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		s := Start(DefaultTimeout)
		_, dup := seen[s.ID()]
		require.False(t, dup)
		seen[s.ID()] = struct{}{}
	}
}
