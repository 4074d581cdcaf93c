package controller

import (
	"sync"
	"testing"
	"time"
)

// newTestCountdown ticks fast so timer tests finish quickly.
func newTestCountdown() *Countdown {
	c := NewCountdown()
	c.interval = 5 * time.Millisecond
	return c
}

// tickRecorder collects callback invocations from the timer goroutine.
type tickRecorder struct {
	mu      sync.Mutex
	ticks   []int
	expired int
	done    chan struct{}
}

func newTickRecorder() *tickRecorder {
	return &tickRecorder{done: make(chan struct{})}
}

func (r *tickRecorder) onTick(_ string, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, remaining)
}

func (r *tickRecorder) onExpire(_ string) {
	r.mu.Lock()
	r.expired++
	expired := r.expired
	r.mu.Unlock()
	if expired == 1 {
		close(r.done)
	}
}

func (r *tickRecorder) snapshot() ([]int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticks := make([]int, len(r.ticks))
	copy(ticks, r.ticks)
	return ticks, r.expired
}

func TestCountdownTicksDownAndExpiresOnce(t *testing.T) {
	c := newTestCountdown()
	rec := newTickRecorder()

	c.Start("poll-1", 3, rec.onTick, rec.onExpire)

	select {
	case <-rec.done:
	case <-time.After(time.Second):
		t.Fatal("countdown did not expire")
	}

	// Give a stray extra tick a chance to show up before asserting.
	time.Sleep(20 * time.Millisecond)

	ticks, expired := rec.snapshot()
	if want := []int{2, 1, 0}; len(ticks) != len(want) {
		t.Fatalf("ticks = %v, want %v", ticks, want)
	} else {
		for i := range want {
			if ticks[i] != want[i] {
				t.Fatalf("ticks = %v, want %v", ticks, want)
			}
		}
	}
	if expired != 1 {
		t.Fatalf("expired %d times, want 1", expired)
	}
}

func TestCountdownStopPreventsExpiry(t *testing.T) {
	c := newTestCountdown()
	rec := newTickRecorder()

	c.Start("poll-1", 100, rec.onTick, rec.onExpire)
	time.Sleep(15 * time.Millisecond)
	c.Stop("poll-1")

	time.Sleep(30 * time.Millisecond)

	ticks, expired := rec.snapshot()
	if expired != 0 {
		t.Fatalf("expired %d times after Stop, want 0", expired)
	}
	// No ticks may land after the stop settled.
	if len(ticks) > 0 && ticks[len(ticks)-1] <= 0 {
		t.Fatalf("countdown ran to zero despite Stop: %v", ticks)
	}
}

func TestCountdownStopIsIdempotent(t *testing.T) {
	c := newTestCountdown()
	rec := newTickRecorder()

	c.Start("poll-1", 100, rec.onTick, rec.onExpire)
	c.Stop("poll-1")
	c.Stop("poll-1")
	c.Stop("never-started")
}

func TestCountdownStartReplacesExisting(t *testing.T) {
	c := newTestCountdown()
	first := newTickRecorder()
	second := newTickRecorder()

	c.Start("poll-1", 100, first.onTick, first.onExpire)
	c.Start("poll-1", 2, second.onTick, second.onExpire)

	select {
	case <-second.done:
	case <-time.After(time.Second):
		t.Fatal("replacement countdown did not expire")
	}

	if _, expired := first.snapshot(); expired != 0 {
		t.Fatal("replaced countdown expired")
	}
}

func TestCountdownStopAll(t *testing.T) {
	c := newTestCountdown()
	first := newTickRecorder()
	second := newTickRecorder()

	c.Start("poll-1", 100, first.onTick, first.onExpire)
	c.Start("poll-2", 100, second.onTick, second.onExpire)

	c.StopAll()
	time.Sleep(30 * time.Millisecond)

	if _, expired := first.snapshot(); expired != 0 {
		t.Fatal("poll-1 expired after StopAll")
	}
	if _, expired := second.snapshot(); expired != 0 {
		t.Fatal("poll-2 expired after StopAll")
	}

	// The registry is empty; stopping again is harmless.
	c.Stop("poll-1")
	c.Stop("poll-2")
}

// TestCountdownStopInsideExpireCallback guards the self-deregistration
// path: the expiry handler may call Stop for its own poll id without
// deadlocking on the countdown mutex.
func TestCountdownStopInsideExpireCallback(t *testing.T) {
	c := newTestCountdown()
	done := make(chan struct{})

	c.Start("poll-1", 1, func(string, int) {}, func(pollID string) {
		c.Stop(pollID)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expire callback did not run")
	}
}
