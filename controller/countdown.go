package controller

import (
	"context"
	"sync"
	"time"
)

// TickFunc receives the remaining whole seconds after each tick.
type TickFunc func(pollID string, remaining int)

// ExpireFunc fires once when a countdown reaches zero.
type ExpireFunc func(pollID string)

// Countdown runs one cancellable per-poll timer, keyed by poll id.
// Completion by coverage must call Stop so a finished poll never emits
// another tick; the expiry path removes its own entry before firing
// ExpireFunc, so a Stop from inside the callback is a safe no-op.
type Countdown struct {
	mu       sync.Mutex
	timers   map[string]context.CancelFunc
	interval time.Duration
}

func NewCountdown() *Countdown {
	return &Countdown{
		timers:   make(map[string]context.CancelFunc),
		interval: time.Second,
	}
}

// Start begins a countdown of the given number of seconds. Starting a
// poll id that already has a countdown replaces the old one.
func (c *Countdown) Start(pollID string, seconds int, onTick TickFunc, onExpire ExpireFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	if prev, ok := c.timers[pollID]; ok {
		prev()
	}
	c.timers[pollID] = cancel
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		remaining := seconds
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// Stop may have raced the tick; never emit after cancellation.
				select {
				case <-ctx.Done():
					return
				default:
				}
				remaining--
				onTick(pollID, remaining)
				if remaining <= 0 {
					c.Stop(pollID)
					onExpire(pollID)
					return
				}
			}
		}
	}()
}

// Stop cancels the countdown for a poll id. Safe to call for ids with
// no running countdown, and safe to call more than once.
func (c *Countdown) Stop(pollID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cancel, ok := c.timers[pollID]; ok {
		cancel()
		delete(c.timers, pollID)
	}
}

// StopAll cancels every running countdown. Used at shutdown.
func (c *Countdown) StopAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for pollID, cancel := range c.timers {
		cancel()
		delete(c.timers, pollID)
	}
}
