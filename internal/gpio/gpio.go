// Package gpio provides the two sense inputs and the relay output with
// hardware abstraction. The real implementation uses the Linux GPIO
// character device; the fake allows testing without hardware.
package gpio

// Line names one of the sense inputs.
type Line int

const (
	// Ignition is the switched-battery sense input.
	Ignition Line = iota
	// Accessory is the gesture/programming sense input.
	Accessory
)

// String returns the line name.
func (l Line) String() string {
	switch l {
	case Ignition:
		return "ignition"
	case Accessory:
		return "accessory"
	}
	return "unknown"
}

// EdgeHandler is invoked on every raw edge of a sense input, in either
// direction. It runs on the event goroutine; callers must do their own
// synchronization.
type EdgeHandler func(line Line)

// Inputs exposes the sense inputs.
type Inputs interface {
	// Raw returns the instantaneous pin level (true = high).
	Raw(line Line) (bool, error)

	// Close releases the input lines.
	Close() error
}

// Output drives the relay enable lines. The physical output fans out to
// two switches, but they are always commanded together.
type Output interface {
	// Set energizes or de-energizes the relay.
	Set(on bool) error

	// Close releases the output lines.
	Close() error
}

// Default pin assignments (BCM numbering).
const (
	DefaultChip         = "gpiochip0"
	DefaultPinIgnition  = 23
	DefaultPinAccessory = 24
)

// DefaultRelayPins are the two enable lines, always driven together.
var DefaultRelayPins = []int{5, 6}
