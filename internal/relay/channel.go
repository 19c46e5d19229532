package relay

// channel is the debounced record of one sense input.
//
// ON is detected optimistically: any edge while the record reads OFF flips
// it ON immediately, so a noisy-but-eventually-ON input is seen as ON on
// the first bounce. OFF is only confirmed by the debounce alarm after the
// input has been quiet for DebounceTime. Only the duration matching the
// current level is live; the other retains its last measured value.
type channel struct {
	level    bool
	onStart  Tick
	offStart Tick
	onTime   Tick
	offTime  Tick
}

// View is a consistent per-pass reading of one channel: its debounced
// level and the most recent ON/OFF durations, both saturated at
// MaxDuration.
type View struct {
	Level   bool
	OnTime  Tick
	OffTime Tick
}

// seed initializes the record from a raw pin reading at startup.
func (c *channel) seed(now Tick, raw bool) {
	c.level = raw
	c.onStart = now
	c.offStart = now
	c.onTime = 0
	c.offTime = 0
}

// onEdge handles a raw level transition in either direction.
func (c *channel) onEdge(now Tick) {
	if !c.level {
		c.level = true
		c.onStart = now
	}
}

// onDebounce handles the debounce alarm firing DebounceTime after the
// last edge. raw is the pin level at that moment. A HIGH pin confirms
// the optimistic ON; a LOW pin means the input settled OFF.
func (c *channel) onDebounce(now Tick, raw bool) {
	if c.level && !raw {
		c.level = false
		c.offStart = now
	}
}

// measure recomputes the live duration and returns the channel view.
// When a duration hits MaxDuration its start tick is pulled forward so
// the clamp stays stable over arbitrarily long steady states instead of
// wrapping back through zero.
func (c *channel) measure(now Tick) View {
	if c.level {
		c.onTime = Since(now, c.onStart)
		if c.onTime > MaxDuration {
			c.onTime = MaxDuration
			c.onStart = now - MaxDuration
		}
	} else {
		c.offTime = Since(now, c.offStart)
		if c.offTime > MaxDuration {
			c.offTime = MaxDuration
			c.offStart = now - MaxDuration
		}
	}
	return View{Level: c.level, OnTime: c.onTime, OffTime: c.offTime}
}
