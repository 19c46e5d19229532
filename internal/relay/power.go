package relay

// evalPower advances the power lifecycle machine and reports whether the
// loop should suspend. Called with the controller lock held, before the
// gesture machines, so a stay-on request emitted in pass N is consumed in
// pass N+1 once the power machine is back at the top of the pass.
func (c *Controller) evalPower(ign, acc View, now Tick) SleepMode {
	switch c.power {
	case PowerDown:
		if ign.Level {
			if acc.Level {
				c.power = PowerOutputOn
			} else {
				c.power = PowerOutputOff
			}
			return SleepNone
		}
		// Nothing to do until an ignition edge; the loop disarms the
		// watchdog around this wait since no periodic source runs.
		return SleepDeep

	case PowerOutputOff:
		if !ign.Level {
			c.power = PowerDown
		} else if acc.Level {
			c.power = PowerOutputOn
		}

	case PowerOutputOn:
		if c.stayOnRequested {
			c.stayOnRequested = false
			c.power = PowerStayOn
		} else if !ign.Level {
			c.power = PowerDown
		} else if !acc.Level {
			c.power = PowerOutputOff
		}

	case PowerStayOn:
		if !ign.Level {
			c.power = PowerTimerWait
			c.seconds = 0
			c.minutes = 0
			c.alarms.Arm(AlarmSecond, now+SecondTick)
		} else if !acc.Level && acc.OffTime > stayOnHysteresis {
			// The accessory may drop up to half a second before the
			// ignition and still count as stay-on.
			c.power = PowerOutputOff
		}

	case PowerTimerWait:
		if ign.Level {
			c.alarms.Disarm(AlarmSecond)
			if acc.Level {
				c.power = PowerOutputOn
			} else {
				c.power = PowerOutputOff
			}
		} else if c.minutes >= c.delayMinutes {
			c.alarms.Disarm(AlarmSecond)
			c.power = PowerDown
		} else {
			// Delay not yet elapsed; the second alarm wakes us.
			return SleepIdle
		}

	default:
		// PowerReset, or a corrupted state value: re-initialize.
		c.reset(now)
	}
	return SleepNone
}
