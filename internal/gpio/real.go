//go:build linux

package gpio

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"
)

// RealIO drives actual hardware through the Linux GPIO character device.
// The sense inputs are requested with both-edge event detection so the
// handler sees every raw transition, bounce included. Events arriving
// before SetHandler are dropped; callers seed initial levels from Raw.
type RealIO struct {
	chip      *gpiocdev.Chip
	ignition  *gpiocdev.Line
	accessory *gpiocdev.Line
	relay     *gpiocdev.Lines
	relayPins []int

	mu      sync.Mutex
	handler EdgeHandler
}

// NewRealIO requests the sense inputs and relay outputs.
func NewRealIO(chipName string, pinIgnition, pinAccessory int, relayPins []int) (*RealIO, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	r := &RealIO{chip: chip, relayPins: relayPins}

	r.ignition, err = chip.RequestLine(pinIgnition,
		gpiocdev.AsInput,
		gpiocdev.WithPullDown,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { r.dispatch(Ignition) }),
	)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request ignition pin %d: %w", pinIgnition, err)
	}

	r.accessory, err = chip.RequestLine(pinAccessory,
		gpiocdev.AsInput,
		gpiocdev.WithPullDown,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { r.dispatch(Accessory) }),
	)
	if err != nil {
		r.ignition.Close()
		chip.Close()
		return nil, fmt.Errorf("request accessory pin %d: %w", pinAccessory, err)
	}

	// Relay enables start de-energized.
	initial := make([]int, len(relayPins))
	r.relay, err = chip.RequestLines(relayPins, gpiocdev.AsOutput(initial...))
	if err != nil {
		r.accessory.Close()
		r.ignition.Close()
		chip.Close()
		return nil, fmt.Errorf("request relay pins %v: %w", relayPins, err)
	}

	return r, nil
}

// SetHandler installs the edge handler. Handlers run on gpiocdev's event
// goroutine.
func (r *RealIO) SetHandler(h EdgeHandler) {
	r.mu.Lock()
	r.handler = h
	r.mu.Unlock()
}

func (r *RealIO) dispatch(line Line) {
	r.mu.Lock()
	h := r.handler
	r.mu.Unlock()
	if h != nil {
		h(line)
	}
}

// Raw returns the instantaneous level of a sense input.
func (r *RealIO) Raw(line Line) (bool, error) {
	l := r.ignition
	if line == Accessory {
		l = r.accessory
	}
	v, err := l.Value()
	if err != nil {
		return false, fmt.Errorf("read %s pin: %w", line, err)
	}
	return v != 0, nil
}

// Set drives all relay enable lines to the same level.
func (r *RealIO) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	vals := make([]int, len(r.relayPins))
	for i := range vals {
		vals[i] = v
	}
	if err := r.relay.SetValues(vals); err != nil {
		return fmt.Errorf("set relay pins: %w", err)
	}
	return nil
}

// Close de-energizes the relay and releases all lines. Inputs are
// reconfigured to pull-down to match boot defaults, as the external
// sense dividers expect.
func (r *RealIO) Close() error {
	var errs []error

	if r.relay != nil {
		if err := r.Set(false); err != nil {
			errs = append(errs, err)
		}
		if err := r.relay.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close relay pins: %w", err))
		}
	}
	for _, in := range []struct {
		name string
		line *gpiocdev.Line
	}{{"ignition", r.ignition}, {"accessory", r.accessory}} {
		if in.line == nil {
			continue
		}
		if err := in.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s pin: %w", in.name, err))
		}
		if err := in.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", in.name, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
