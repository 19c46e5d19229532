package timebase

import (
	"sync"

	"github.com/mikelawrence/LED-Relay/internal/relay"
)

// Fake is a manually-advanced tick source for tests. It satisfies
// relay.Alarms. Advance moves time forward and fires due alarms in
// deadline order, so a test can script edges and alarm callbacks exactly
// as the hardware would interleave them.
type Fake struct {
	mu        sync.Mutex
	now       relay.Tick
	handler   Handler
	deadlines map[relay.AlarmID]relay.Tick
}

// NewFake creates a Fake starting at the given tick.
func NewFake(start relay.Tick) *Fake {
	return &Fake{
		now:       start,
		deadlines: make(map[relay.AlarmID]relay.Tick),
	}
}

// SetHandler installs the alarm callback.
func (f *Fake) SetHandler(h Handler) {
	f.mu.Lock()
	f.handler = h
	f.mu.Unlock()
}

// Now returns the current simulated tick.
func (f *Fake) Now() relay.Tick {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Arm schedules the alarm, replacing any earlier deadline.
func (f *Fake) Arm(id relay.AlarmID, at relay.Tick) {
	f.mu.Lock()
	f.deadlines[id] = at
	f.mu.Unlock()
}

// Disarm cancels the alarm if it is armed.
func (f *Fake) Disarm(id relay.AlarmID) {
	f.mu.Lock()
	delete(f.deadlines, id)
	f.mu.Unlock()
}

// Armed reports whether the alarm currently has a deadline.
func (f *Fake) Armed(id relay.AlarmID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.deadlines[id]
	return ok
}

// Advance moves simulated time forward by d ticks, firing every alarm
// whose deadline falls inside the window, earliest first. The handler is
// called with time stopped at the deadline, so a handler that re-arms
// (like the second counter) fires repeatedly across a long advance.
func (f *Fake) Advance(d relay.Tick) {
	remaining := d
	for {
		f.mu.Lock()
		var dueID relay.AlarmID
		var dueDelta relay.Tick
		found := false
		for id, at := range f.deadlines {
			delta := relay.Since(at, f.now)
			if delta <= remaining && (!found || delta < dueDelta) {
				found = true
				dueID = id
				dueDelta = delta
			}
		}
		if !found {
			f.now += remaining
			f.mu.Unlock()
			return
		}
		delete(f.deadlines, dueID)
		f.now += dueDelta
		remaining -= dueDelta
		h := f.handler
		f.mu.Unlock()
		if h != nil {
			h(dueID)
		}
	}
}
