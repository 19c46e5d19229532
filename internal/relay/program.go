package relay

// evalProgram advances the delay-programming decoder and returns the
// programmed delay in minutes when a sequence commits, 0 otherwise.
//
// The sequence is: N short accessory flashes (ON and OFF each <=3 s),
// a 4-7 s gap, a 4-7 s ON, a 4-7 s gap, then ON, which commits
// min(N,25)*10 minutes and drives a success blink on the output. Any
// out-of-window duration aborts silently to idle; the operator simply
// retries. The decoder can only be started within the first 60 s of
// ignition-on. Only called while ignition is ON.
func (c *Controller) evalProgram(ign, acc View) uint8 {
	switch c.prog {
	case progFlashOn:
		if acc.OnTime > stayOnWindow {
			// Too long to be a flash pulse.
			c.prog = progIdle
		} else if !acc.Level {
			c.flashCount++
			c.prog = progFlashOff
		}

	case progFlashOff:
		if acc.OffTime > confirmWindow {
			c.prog = progIdle
		} else if acc.Level {
			switch {
			case acc.OffTime > flashGapMax:
				// 4-7 s gap: flashes are done, confirmation begins.
				c.prog = progEndOn
			case acc.OffTime > stayOnWindow:
				// 3-4 s gap is ambiguous.
				c.prog = progIdle
			default:
				c.prog = progFlashOn
			}
		}

	case progEndOn:
		if acc.OnTime > confirmWindow {
			c.prog = progIdle
		} else if !acc.Level {
			if acc.OnTime > flashGapMax {
				c.prog = progEndOff
			} else {
				c.prog = progIdle
			}
		}

	case progEndOff:
		if acc.OffTime > confirmWindow {
			c.prog = progIdle
		} else if acc.Level {
			if acc.OffTime > flashGapMax {
				if c.flashCount > maxFlashes {
					c.flashCount = maxFlashes
				}
				minutes := c.flashCount * 10
				c.delayMinutes = minutes
				c.prog = progIndicateOn
				return minutes
			}
			c.prog = progIdle
		}

	case progIndicateOn:
		// Success: output stays on for 2 s, then blinks off.
		if !acc.Level {
			c.prog = progIdle
		} else if acc.OnTime > indicateOnMark {
			c.prog = progIndicateOff
		}

	case progIndicateOff:
		// Output forced off for 1 s more (both marks count from the
		// same accessory ON edge), then the sequence is complete.
		if !acc.Level {
			c.prog = progIdle
		} else if acc.OnTime > indicateOffMark {
			c.prog = progIdle
		}

	default:
		// Idle, or a corrupted state value. Once ignition has been on
		// for more than 60 s the decoder stays idle until the next
		// ignition cycle.
		c.prog = progIdle
		if ign.OnTime <= armWindow && acc.Level {
			c.flashCount = 0
			c.prog = progFlashOn
		}
	}
	return 0
}
