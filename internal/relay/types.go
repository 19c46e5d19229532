// Package relay contains the control core of the LED relay: two debounced
// sense channels and the power, stay-on, and programming state machines
// that decide the relay output. The package has no hardware, OS, or clock
// dependencies: ticks are always passed in, and alarms are requested
// through the Alarms interface, so every behavior is testable without
// hardware.
package relay

// ChannelID names one of the two sense inputs.
type ChannelID int

const (
	// Ignition is the switched-battery sense input; nothing runs
	// without it.
	Ignition ChannelID = iota
	// Accessory is the second sense input carrying the stay-on gesture
	// and the programming sequence.
	Accessory
)

// String returns the channel name.
func (c ChannelID) String() string {
	switch c {
	case Ignition:
		return "ignition"
	case Accessory:
		return "accessory"
	}
	return "unknown"
}

// AlarmID names a one-shot alarm slot on the timebase.
type AlarmID int

const (
	// AlarmDebounceIgnition confirms the ignition channel after a
	// quiet period.
	AlarmDebounceIgnition AlarmID = iota
	// AlarmDebounceAccessory confirms the accessory channel.
	AlarmDebounceAccessory
	// AlarmSecond drives the seconds/minutes counter while the power
	// machine is in TimerWait.
	AlarmSecond
)

// Alarms schedules one-shot alarm callbacks. Arming an already-armed
// alarm replaces its deadline; an armed alarm fires exactly once at or
// after the requested tick.
type Alarms interface {
	Arm(id AlarmID, at Tick)
	Disarm(id AlarmID)
}

// PowerState is the top-level lifecycle state.
type PowerState uint8

const (
	// PowerReset is the boot/corruption pseudo-state; the controller
	// re-initializes out of it on the next evaluation.
	PowerReset PowerState = iota
	// PowerDown: ignition off, output off, deep sleep until an edge.
	PowerDown
	// PowerOutputOff: ignition on, accessory off, output off.
	PowerOutputOff
	// PowerOutputOn: ignition on, accessory on, output on.
	PowerOutputOn
	// PowerStayOn: like PowerOutputOn but armed to outlive ignition.
	PowerStayOn
	// PowerTimerWait: ignition off, output held on until the
	// programmed delay elapses.
	PowerTimerWait
)

// String returns the state name as published in events and status.
func (s PowerState) String() string {
	switch s {
	case PowerReset:
		return "RESET"
	case PowerDown:
		return "DOWN"
	case PowerOutputOff:
		return "OUTPUT_OFF"
	case PowerOutputOn:
		return "OUTPUT_ON"
	case PowerStayOn:
		return "STAY_ON"
	case PowerTimerWait:
		return "TIMER_WAIT"
	}
	return "UNKNOWN"
}

// stayOnState tracks the quick ON-OFF-ON gesture.
type stayOnState uint8

const (
	stayOnIdle stayOnState = iota
	stayOnWaitOn
	stayOnWaitOff
)

// progState tracks the delay-programming sequence on the accessory input.
type progState uint8

const (
	progIdle progState = iota
	progFlashOn
	progFlashOff
	progEndOn
	progEndOff
	progIndicateOn
	progIndicateOff
)

// SleepMode is the suspension the control loop should enter after a pass.
type SleepMode uint8

const (
	// SleepNone: keep polling.
	SleepNone SleepMode = iota
	// SleepIdle: block until the next edge or second tick; the
	// watchdog stays armed because the second alarm wakes us in time.
	SleepIdle
	// SleepDeep: block until the next edge with the watchdog disarmed;
	// nothing periodic runs in this state to kick it.
	SleepDeep
)

// EventType identifies a reportable controller transition.
type EventType string

const (
	EventPowerDown       EventType = "POWER_DOWN"
	EventOutputOff       EventType = "OUTPUT_OFF"
	EventOutputOn        EventType = "OUTPUT_ON"
	EventStayOn          EventType = "STAY_ON"
	EventTimerWait       EventType = "TIMER_WAIT"
	EventDelayProgrammed EventType = "DELAY_PROGRAMMED"
)

// Event is a transition surfaced by Step for telemetry. DelayMinutes is
// only meaningful for EventDelayProgrammed.
type Event struct {
	Type         EventType
	Power        PowerState
	Ignition     bool
	Accessory    bool
	DelayMinutes uint8
}

// EventCounts tallies emitted events since boot.
type EventCounts struct {
	PowerDown  int
	OutputOff  int
	OutputOn   int
	StayOn     int
	TimerWait  int
	Programmed int
}

// Decision is the outcome of one control pass.
type Decision struct {
	// Output is the physical relay command for this pass.
	Output bool
	// Sleep tells the loop whether to suspend before the next pass.
	Sleep SleepMode
	// Events are the transitions that happened during this pass.
	Events []Event
}

// Status is a point-in-time copy of controller state for reporting.
type Status struct {
	Power        PowerState
	Ignition     bool
	Accessory    bool
	Output       bool
	DelayMinutes uint8
	TimerSeconds uint8
	TimerMinutes uint8
	Programming  bool
	Counts       EventCounts
}
