// Package timebase provides the millisecond tick source and the one-shot
// alarm scheduling the relay core runs on. The real implementation maps a
// monotonic clock onto the wrapping 16-bit tick counter; the fake allows
// driving the core through simulated time.
package timebase

import (
	"sync"
	"time"

	"github.com/mikelawrence/LED-Relay/internal/relay"
)

// Handler is invoked when an armed alarm fires. It runs on a timer
// goroutine; the relay controller serializes its own state internally.
type Handler func(id relay.AlarmID)

// Timebase is the real tick source. It satisfies relay.Alarms.
type Timebase struct {
	origin time.Time

	mu      sync.Mutex
	handler Handler
	timers  map[relay.AlarmID]*time.Timer
}

// New creates a Timebase with its tick origin at the current time. The
// handler must be set before any alarm is armed.
func New() *Timebase {
	return &Timebase{
		origin: time.Now(),
		timers: make(map[relay.AlarmID]*time.Timer),
	}
}

// SetHandler installs the alarm callback.
func (tb *Timebase) SetHandler(h Handler) {
	tb.mu.Lock()
	tb.handler = h
	tb.mu.Unlock()
}

// Now returns the current tick. Truncating the millisecond count to
// uint16 is exactly the modulo-65536 wrap the core expects.
func (tb *Timebase) Now() relay.Tick {
	return relay.Tick(time.Since(tb.origin).Milliseconds())
}

// Arm schedules the alarm to fire at the given tick, replacing any
// earlier deadline for the same slot. The alarm fires exactly once; a
// replaced timer that has already started firing is discarded.
func (tb *Timebase) Arm(id relay.AlarmID, at relay.Tick) {
	delay := time.Duration(relay.Since(at, tb.Now())) * time.Millisecond

	tb.mu.Lock()
	defer tb.mu.Unlock()
	if t, ok := tb.timers[id]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		tb.mu.Lock()
		if tb.timers[id] != t {
			// Re-armed or disarmed while this fire was in flight.
			tb.mu.Unlock()
			return
		}
		delete(tb.timers, id)
		h := tb.handler
		tb.mu.Unlock()
		if h != nil {
			h(id)
		}
	})
	tb.timers[id] = t
}

// Disarm cancels the alarm if it is armed.
func (tb *Timebase) Disarm(id relay.AlarmID) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if t, ok := tb.timers[id]; ok {
		t.Stop()
		delete(tb.timers, id)
	}
}
