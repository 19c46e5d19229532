package relay

import "testing"

func TestSinceWraps(t *testing.T) {
	if got := Since(10, 65530); got != 16 {
		t.Errorf("Since(10, 65530) = %d, want 16", got)
	}
	if got := Since(500, 500); got != 0 {
		t.Errorf("Since(500, 500) = %d, want 0", got)
	}
	if got := Since(0, 1); got != 65535 {
		t.Errorf("Since(0, 1) = %d, want 65535", got)
	}
}

func TestChannelEdgeTurnsOnImmediately(t *testing.T) {
	var c channel
	c.seed(100, false)

	c.onEdge(200)
	v := c.measure(250)
	if !v.Level {
		t.Error("channel should read ON right after an edge")
	}
	if v.OnTime != 50 {
		t.Errorf("expected 50 ticks on, got %d", v.OnTime)
	}
}

func TestChannelDebounceConfirmsOff(t *testing.T) {
	var c channel
	c.seed(0, true)

	// A low reading at the debounce alarm settles the record OFF.
	c.onDebounce(1000, false)
	v := c.measure(1200)
	if v.Level {
		t.Error("channel should read OFF after debounce confirms low")
	}
	if v.OffTime != 200 {
		t.Errorf("expected 200 ticks off, got %d", v.OffTime)
	}
}

func TestChannelDebounceKeepsOnWhenHigh(t *testing.T) {
	var c channel
	c.seed(0, true)

	c.onDebounce(1000, true)
	if v := c.measure(1100); !v.Level {
		t.Error("a high reading must not turn the channel off")
	}
}

func TestChannelOffNeverSetByEdge(t *testing.T) {
	var c channel
	c.seed(0, true)

	// Edges alone never turn the record off; only the debounce alarm does.
	c.onEdge(500)
	if v := c.measure(600); !v.Level {
		t.Error("edge must not turn the channel off")
	}
}

func TestMeasureClampsLongDurations(t *testing.T) {
	var c channel
	c.seed(0, true)

	// Walk simulated time far past the 16-bit wrap at the daemon's poll
	// cadence; the reported duration must pin at the ceiling instead of
	// wrapping back through zero.
	var now Tick
	for i := 0; i < 1000; i++ {
		now += 100
		v := c.measure(now)
		if v.OnTime > MaxDuration {
			t.Fatalf("tick %d: duration %d exceeds ceiling", now, v.OnTime)
		}
		if i > 651 && v.OnTime != MaxDuration {
			t.Fatalf("tick %d: expected clamp at %d, got %d", now, MaxDuration, v.OnTime)
		}
	}
}

func TestMeasureRetainsInactiveDuration(t *testing.T) {
	var c channel
	c.seed(0, true)
	c.measure(2000)

	c.onDebounce(2000, false)
	v := c.measure(3000)
	if v.OnTime != 2000 {
		t.Errorf("expected retained on-time 2000, got %d", v.OnTime)
	}
	if v.OffTime != 1000 {
		t.Errorf("expected off-time 1000, got %d", v.OffTime)
	}
}
