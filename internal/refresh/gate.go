// Package refresh throttles reloads shared by every library view.
package refresh

import (
	"sync/atomic"
	"time"
)

// DefaultCooldown is the minimum interval between permitted refreshes.
const DefaultCooldown = 10 * time.Second

// Gate permits at most one refresh per cooldown window. A single Gate is
// shared by all controllers so one refresh suppresses the others.
type Gate struct {
	cooldown time.Duration
	now      func() time.Time
	last     atomic.Pointer[time.Time] // nil until the first refresh
}

// NewGate creates a gate. A cooldown <= 0 uses DefaultCooldown; a nil clock
// uses time.Now.
func NewGate(cooldown time.Duration, now func() time.Time) *Gate {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if now == nil {
		now = time.Now
	}
	return &Gate{cooldown: cooldown, now: now}
}

// TryAcquire reports whether a refresh may proceed now. On success the
// refresh time is recorded before returning.
func (g *Gate) TryAcquire() bool {
	for {
		prev := g.last.Load()
		now := g.now()
		if prev != nil {
			// A clock reading before the last refresh counts as inside the window.
			if now.Before(*prev) || now.Sub(*prev) < g.cooldown {
				return false
			}
		}
		if g.last.CompareAndSwap(prev, &now) {
			return true
		}
	}
}

// Last returns the time of the last permitted refresh.
func (g *Gate) Last() (time.Time, bool) {
	if p := g.last.Load(); p != nil {
		return *p, true
	}
	return time.Time{}, false
}

// Cooldown returns the configured window.
func (g *Gate) Cooldown() time.Duration {
	return g.cooldown
}
