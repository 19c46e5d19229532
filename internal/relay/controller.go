package relay

import "sync"

// Controller owns both debounced channels, the three state machines, the
// seconds/minutes counter, and the in-memory copy of the programmed
// delay. Edge and alarm callbacks may arrive on any goroutine; every
// entry point serializes on one mutex, which stands in for the
// interrupt-disable bracketing the hardware design relies on. A Step is
// therefore always a consistent snapshot: a callback can land between
// passes but never inside one.
type Controller struct {
	mu     sync.Mutex
	alarms Alarms

	ignition  channel
	accessory channel

	power  PowerState
	stayOn stayOnState
	prog   progState

	// stayOnRequested is the one-shot gesture signal: set by the
	// stay-on machine, consumed (or discarded) by the power machine.
	stayOnRequested bool

	flashCount   uint8
	delayMinutes uint8

	seconds uint8
	minutes uint8

	lastOutput bool
	counts     EventCounts
}

// New creates a Controller seeded from the raw pin levels at boot and the
// persisted delay byte. The first Step performs the reset transition out
// of PowerReset.
func New(alarms Alarms, now Tick, ignitionRaw, accessoryRaw bool, delayMinutes uint8) *Controller {
	c := &Controller{
		alarms:       alarms,
		power:        PowerReset,
		delayMinutes: delayMinutes,
	}
	c.ignition.seed(now, ignitionRaw)
	c.accessory.seed(now, accessoryRaw)
	return c
}

// HandleEdge is the edge callback for either sense input. Any edge means
// the input may be ON, so the record flips ON immediately; the final
// level is only trusted once the input has been quiet, so the debounce
// alarm is (re)armed on every edge regardless of direction.
func (c *Controller) HandleEdge(ch ChannelID, now Tick) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channel(ch).onEdge(now)
	c.alarms.Arm(debounceAlarm(ch), now+DebounceTime)
}

// HandleDebounce is the debounce alarm callback. raw is the pin level at
// the moment the alarm fired.
func (c *Controller) HandleDebounce(ch ChannelID, now Tick, raw bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channel(ch).onDebounce(now, raw)
}

// HandleSecond is the periodic alarm callback driving the delay counter.
// It re-arms itself; the power machine arms it on TimerWait entry and
// disarms it on exit.
func (c *Controller) HandleSecond(now Tick) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.power != PowerTimerWait {
		return
	}
	c.alarms.Arm(AlarmSecond, now+SecondTick)
	c.seconds++
	if c.seconds == 60 {
		c.seconds = 0
		c.minutes++
		if c.minutes > 60 {
			c.minutes = 60
		}
	}
}

// Step runs one control pass: snapshot both channels, evaluate the power
// machine, then (ignition permitting) the stay-on and programming
// machines, and finally the output rule. Re-running Step with unchanged
// inputs produces no further transitions.
func (c *Controller) Step(now Tick) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	ign := c.ignition.measure(now)
	acc := c.accessory.measure(now)

	var d Decision
	prev := c.power
	d.Sleep = c.evalPower(ign, acc, now)

	if !ign.Level {
		// Without ignition the gesture machines are meaningless;
		// they restart from scratch when ignition returns.
		c.stayOn = stayOnIdle
		c.stayOnRequested = false
		c.prog = progIdle
	} else {
		c.evalStayOn(acc)
		if minutes := c.evalProgram(ign, acc); minutes != 0 {
			c.counts.Programmed++
			d.Events = append(d.Events, Event{
				Type:         EventDelayProgrammed,
				Power:        c.power,
				Ignition:     ign.Level,
				Accessory:    acc.Level,
				DelayMinutes: minutes,
			})
		}
	}

	if c.power != prev {
		c.countPower(c.power)
		d.Events = append(d.Events, Event{
			Type:      powerEvent(c.power),
			Power:     c.power,
			Ignition:  ign.Level,
			Accessory: acc.Level,
		})
	}

	d.Output = outputEnabled(c.power, c.prog)
	c.lastOutput = d.Output
	return d
}

// Status returns a consistent copy of the controller state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Power:        c.power,
		Ignition:     c.ignition.level,
		Accessory:    c.accessory.level,
		Output:       c.lastOutput,
		DelayMinutes: c.delayMinutes,
		TimerSeconds: c.seconds,
		TimerMinutes: c.minutes,
		Programming:  c.prog != progIdle,
		Counts:       c.counts,
	}
}

// DelayMinutes returns the delay currently in effect.
func (c *Controller) DelayMinutes() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delayMinutes
}

// reset re-initializes everything except the in-memory delay, using the
// debounced channel levels as the seed. Reached at boot and whenever a
// state variable holds an unrecognized value.
func (c *Controller) reset(now Tick) {
	c.alarms.Disarm(AlarmSecond)
	c.seconds = 0
	c.minutes = 0
	c.stayOn = stayOnIdle
	c.stayOnRequested = false
	c.prog = progIdle
	c.flashCount = 0
	if c.ignition.level {
		if c.accessory.level {
			c.power = PowerOutputOn
		} else {
			c.power = PowerOutputOff
		}
	} else {
		c.power = PowerDown
	}
}

func (c *Controller) channel(ch ChannelID) *channel {
	if ch == Ignition {
		return &c.ignition
	}
	return &c.accessory
}

func debounceAlarm(ch ChannelID) AlarmID {
	if ch == Ignition {
		return AlarmDebounceIgnition
	}
	return AlarmDebounceAccessory
}

func (c *Controller) countPower(s PowerState) {
	switch s {
	case PowerDown:
		c.counts.PowerDown++
	case PowerOutputOff:
		c.counts.OutputOff++
	case PowerOutputOn:
		c.counts.OutputOn++
	case PowerStayOn:
		c.counts.StayOn++
	case PowerTimerWait:
		c.counts.TimerWait++
	}
}

func powerEvent(s PowerState) EventType {
	switch s {
	case PowerDown:
		return EventPowerDown
	case PowerOutputOff:
		return EventOutputOff
	case PowerOutputOn:
		return EventOutputOn
	case PowerStayOn:
		return EventStayOn
	case PowerTimerWait:
		return EventTimerWait
	}
	return EventPowerDown
}
