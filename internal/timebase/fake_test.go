package timebase

import (
	"testing"

	"github.com/mikelawrence/LED-Relay/internal/relay"
)

func TestFakeAdvanceFiresInOrder(t *testing.T) {
	f := NewFake(0)
	var fired []relay.AlarmID
	f.SetHandler(func(id relay.AlarmID) {
		fired = append(fired, id)
	})

	f.Arm(relay.AlarmSecond, 1000)
	f.Arm(relay.AlarmDebounceIgnition, 50)
	f.Advance(2000)

	if len(fired) != 2 {
		t.Fatalf("expected 2 fires, got %d", len(fired))
	}
	if fired[0] != relay.AlarmDebounceIgnition || fired[1] != relay.AlarmSecond {
		t.Errorf("expected debounce before second, got %v", fired)
	}
	if got := f.Now(); got != 2000 {
		t.Errorf("expected now 2000, got %d", got)
	}
}

func TestFakeHandlerSeesDeadlineTime(t *testing.T) {
	f := NewFake(0)
	var at relay.Tick
	f.SetHandler(func(id relay.AlarmID) {
		at = f.Now()
	})

	f.Arm(relay.AlarmDebounceAccessory, 50)
	f.Advance(500)

	if at != 50 {
		t.Errorf("handler should run with time at the deadline, got %d", at)
	}
}

func TestFakeRearmingHandler(t *testing.T) {
	f := NewFake(0)
	fires := 0
	f.SetHandler(func(id relay.AlarmID) {
		fires++
		f.Arm(relay.AlarmSecond, f.Now()+1000)
	})

	f.Arm(relay.AlarmSecond, 1000)
	f.Advance(5500)

	if fires != 5 {
		t.Errorf("expected 5 fires from a self-rearming alarm, got %d", fires)
	}
	if !f.Armed(relay.AlarmSecond) {
		t.Error("alarm should still be armed")
	}
}

func TestFakeDisarm(t *testing.T) {
	f := NewFake(0)
	fired := false
	f.SetHandler(func(id relay.AlarmID) { fired = true })

	f.Arm(relay.AlarmSecond, 1000)
	f.Disarm(relay.AlarmSecond)
	f.Advance(2000)

	if fired {
		t.Error("disarmed alarm must not fire")
	}
	if f.Armed(relay.AlarmSecond) {
		t.Error("Armed should report false after Disarm")
	}
}

func TestFakeAdvanceAcrossWrap(t *testing.T) {
	start := relay.Tick(65000)
	f := NewFake(start)
	fired := false
	f.SetHandler(func(id relay.AlarmID) { fired = true })

	// Deadline lands past the 16-bit wrap.
	f.Arm(relay.AlarmDebounceIgnition, start+1000)
	f.Advance(2000)

	if !fired {
		t.Error("alarm across the wrap must fire")
	}
	if got := f.Now(); got != start+2000 {
		t.Errorf("expected wrapped now, got %d", got)
	}
}
