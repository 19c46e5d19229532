// Package watchdog abstracts the hardware watchdog. While armed it must
// be kicked periodically or the system resets; the control loop disarms
// it only across the deep ignition-off wait, where nothing periodic runs
// to kick it.
package watchdog

import (
	"fmt"
	"os"
	"sync"
)

// Watchdog arms, disarms, and kicks the timer. Kick while disarmed is a
// no-op.
type Watchdog interface {
	Arm() error
	Disarm() error
	Kick() error
}

// Device drives a Linux watchdog character device. Opening the device
// starts the timer; Disarm writes the magic character before closing so
// the kernel actually stops the timer instead of firing after the fd is
// gone.
type Device struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// NewDevice creates a Device for the given watchdog node, e.g.
// /dev/watchdog. The timer does not start until Arm.
func NewDevice(path string) *Device {
	return &Device{path: path}
}

// Arm opens the device, starting the timer. Arming an armed watchdog is
// a no-op.
func (d *Device) Arm() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f != nil {
		return nil
	}
	f, err := os.OpenFile(d.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("arm watchdog: %w", err)
	}
	d.f = f
	return nil
}

// Kick pets the timer. A no-op while disarmed.
func (d *Device) Kick() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return nil
	}
	if _, err := d.f.Write([]byte{0}); err != nil {
		return fmt.Errorf("kick watchdog: %w", err)
	}
	return nil
}

// Disarm stops the timer via magic close. A no-op while disarmed.
func (d *Device) Disarm() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return nil
	}
	_, werr := d.f.Write([]byte("V"))
	cerr := d.f.Close()
	d.f = nil
	if werr != nil {
		return fmt.Errorf("disarm watchdog: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("disarm watchdog: %w", cerr)
	}
	return nil
}

// Noop is used when no watchdog device is configured.
type Noop struct{}

// Arm does nothing.
func (Noop) Arm() error { return nil }

// Disarm does nothing.
func (Noop) Disarm() error { return nil }

// Kick does nothing.
func (Noop) Kick() error { return nil }
