package refresh

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func TestGate_CooldownScenario(t *testing.T) {
	t0 := time.Unix(0, 0)
	clock := &fakeClock{t: t0}
	g := NewGate(10*time.Second, clock.Now)

	assert.True(t, g.TryAcquire(), "first refresh at t=0")

	clock.Set(t0.Add(5000 * time.Millisecond))
	assert.False(t, g.TryAcquire(), "t=5000ms is inside the window")

	clock.Set(t0.Add(10001 * time.Millisecond))
	assert.True(t, g.TryAcquire(), "t=10001ms is past the window")

	last, ok := g.Last()
	assert.True(t, ok)
	assert.Equal(t, t0.Add(10001*time.Millisecond), last)
}

func TestGate_ExactCooldownIsPermitted(t *testing.T) {
	t0 := time.Unix(100, 0)
	clock := &fakeClock{t: t0}
	g := NewGate(10*time.Second, clock.Now)

	assert.True(t, g.TryAcquire())
	clock.Set(t0.Add(10 * time.Second))
	assert.True(t, g.TryAcquire())
}

func TestGate_WindowsBelowCooldown(t *testing.T) {
	for _, w := range []time.Duration{0, time.Millisecond, time.Second, 9999 * time.Millisecond} {
		t0 := time.Unix(50, 0)
		clock := &fakeClock{t: t0}
		g := NewGate(10*time.Second, clock.Now)

		reloads := 0
		if g.TryAcquire() {
			reloads++
		}
		clock.Set(t0.Add(w))
		if g.TryAcquire() {
			reloads++
		}
		assert.Equal(t, 1, reloads, "window %v", w)
	}
}

func TestGate_ClockGoingBackwardsIsSuppressed(t *testing.T) {
	t0 := time.Unix(1000, 0)
	clock := &fakeClock{t: t0}
	g := NewGate(time.Second, clock.Now)

	assert.True(t, g.TryAcquire())
	clock.Set(t0.Add(-time.Hour))
	assert.False(t, g.TryAcquire())

	last, _ := g.Last()
	assert.Equal(t, t0, last, "timestamp never moves backwards")
}

func TestGate_Defaults(t *testing.T) {
	g := NewGate(0, nil)
	assert.Equal(t, DefaultCooldown, g.Cooldown())
	_, ok := g.Last()
	assert.False(t, ok)
	assert.True(t, g.TryAcquire())
	assert.False(t, g.TryAcquire())
}

func TestGate_ConcurrentCallersShareOneWindow(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	g := NewGate(10*time.Second, clock.Now)

	var granted atomic.Int32
	var wg sync.WaitGroup
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire() {
				granted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), granted.Load())
}
