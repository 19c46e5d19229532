package relay

// Tick is one millisecond of the 16-bit hardware tick counter.
// Arithmetic on Tick wraps modulo 65536, exactly like the counter it
// mirrors, so a duration is always `now - start` regardless of wrap.
type Tick uint16

// MaxDuration is the ceiling applied to every measured duration: 65.000 s.
// Steady states longer than this would otherwise wrap back through zero.
const MaxDuration Tick = 65000

// DebounceTime is how long an input must be quiet before an OFF reading
// is trusted.
const DebounceTime Tick = 50

// SecondTick is the period of the seconds/minutes counter alarm.
const SecondTick Tick = 1000

// Protocol timing windows, all in ticks (milliseconds).
const (
	// stayOnWindow bounds each leg of the stay-on gesture and the
	// maximum length of a programming flash pulse.
	stayOnWindow Tick = 3000

	// stayOnHysteresis lets the accessory input drop slightly before
	// the ignition without cancelling stay-on.
	stayOnHysteresis Tick = 500

	// flashGapMax ends the no-man's-land between flash gaps (<=3 s)
	// and the confirmation gap (>4 s); gaps inside (3 s, 4 s] abort.
	flashGapMax Tick = 4000

	// confirmWindow is the upper bound on every confirmation phase.
	confirmWindow Tick = 7000

	// armWindow is how long after ignition-on the programming decoder
	// can still be started.
	armWindow Tick = 60000

	// indicateOnMark and indicateOffMark are the accessory ON-duration
	// marks at which the success indicator flips output off and then
	// finishes. Both count from the same accessory ON edge.
	indicateOnMark  Tick = 2000
	indicateOffMark Tick = 3000
)

// maxFlashes caps the programmable delay at 25 increments (250 minutes).
const maxFlashes uint8 = 25

// DefaultDelayMinutes is the stay-on delay used before anything has been
// programmed.
const DefaultDelayMinutes uint8 = 30

// Since returns the elapsed ticks from start to now, modulo 2^16.
func Since(now, start Tick) Tick {
	return now - start
}
