package watchdog

import "sync"

// Fake records watchdog calls for test assertions.
type Fake struct {
	mu    sync.Mutex
	armed bool

	// Arms, Disarms, and Kicks count calls. KicksWhileDisarmed counts
	// kicks that arrived with the timer stopped.
	Arms               int
	Disarms            int
	Kicks              int
	KicksWhileDisarmed int
}

// Arm records the call.
func (f *Fake) Arm() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Arms++
	f.armed = true
	return nil
}

// Disarm records the call.
func (f *Fake) Disarm() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Disarms++
	f.armed = false
	return nil
}

// Kick records the call.
func (f *Fake) Kick() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Kicks++
	if !f.armed {
		f.KicksWhileDisarmed++
	}
	return nil
}

// Armed reports the current armed state.
func (f *Fake) Armed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.armed
}
