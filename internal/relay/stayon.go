package relay

// evalStayOn advances the stay-on gesture machine: accessory ON (<3 s),
// OFF (<3 s), ON again requests that the output outlive the ignition.
// Only called while ignition is ON; any leg exceeding the window aborts
// back to idle without a request. The request is edge-triggered: raised
// once here, consumed once by the power machine.
func (c *Controller) evalStayOn(acc View) {
	switch c.stayOn {
	case stayOnWaitOn:
		if acc.OnTime > stayOnWindow {
			c.stayOn = stayOnIdle
		} else if !acc.Level {
			c.stayOn = stayOnWaitOff
		}

	case stayOnWaitOff:
		if acc.OffTime > stayOnWindow {
			c.stayOn = stayOnIdle
		} else if acc.Level {
			c.stayOn = stayOnIdle
			c.stayOnRequested = true
		}

	default:
		// Idle, or a corrupted state value: accessory ON starts the
		// gesture.
		c.stayOn = stayOnIdle
		if acc.Level {
			c.stayOn = stayOnWaitOn
		}
	}
}
