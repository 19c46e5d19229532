package gpio

import "sync"

// FakeIO is a test double implementing both Inputs and Output. Levels are
// set by the test; level changes (and explicit bounces) invoke the edge
// handler synchronously, like the character device event stream would.
type FakeIO struct {
	mu      sync.Mutex
	levels  [2]bool
	handler EdgeHandler

	// Sets records every relay command in order.
	Sets []bool

	// Closed tracks if Close was called.
	Closed bool

	// RawError, if set, will be returned by Raw.
	RawError error

	// SetError, if set, will be returned by Set.
	SetError error
}

// NewFakeIO creates a FakeIO with the given initial input levels.
func NewFakeIO(ignition, accessory bool) *FakeIO {
	f := &FakeIO{}
	f.levels[Ignition] = ignition
	f.levels[Accessory] = accessory
	return f
}

// SetHandler installs the edge handler.
func (f *FakeIO) SetHandler(h EdgeHandler) {
	f.mu.Lock()
	f.handler = h
	f.mu.Unlock()
}

// SetLevel changes a raw input level. If the level actually changes the
// edge handler fires, as a real edge would.
func (f *FakeIO) SetLevel(line Line, level bool) {
	f.mu.Lock()
	changed := f.levels[line] != level
	f.levels[line] = level
	h := f.handler
	f.mu.Unlock()
	if changed && h != nil {
		h(line)
	}
}

// Bounce fires the edge handler without a net level change, simulating
// contact bounce.
func (f *FakeIO) Bounce(line Line) {
	f.mu.Lock()
	h := f.handler
	f.mu.Unlock()
	if h != nil {
		h(line)
	}
}

// Raw returns the current scripted level.
func (f *FakeIO) Raw(line Line) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RawError != nil {
		return false, f.RawError
	}
	return f.levels[line], nil
}

// Set records the relay command.
func (f *FakeIO) Set(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetError != nil {
		return f.SetError
	}
	f.Sets = append(f.Sets, on)
	return nil
}

// LastSet returns the most recent relay command, or false if none.
func (f *FakeIO) LastSet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Sets) == 0 {
		return false
	}
	return f.Sets[len(f.Sets)-1]
}

// Close marks the fake as closed.
func (f *FakeIO) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}
