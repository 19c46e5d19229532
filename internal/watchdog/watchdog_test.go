package watchdog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDeviceLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchdog")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	d := NewDevice(path)

	// Kick and Disarm while disarmed are no-ops.
	if err := d.Kick(); err != nil {
		t.Fatalf("Kick while disarmed: %v", err)
	}
	if err := d.Disarm(); err != nil {
		t.Fatalf("Disarm while disarmed: %v", err)
	}

	if err := d.Arm(); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if err := d.Arm(); err != nil {
		t.Fatalf("Arm while armed: %v", err)
	}
	if err := d.Kick(); err != nil {
		t.Fatalf("Kick: %v", err)
	}
	if err := d.Disarm(); err != nil {
		t.Fatalf("Disarm: %v", err)
	}

	// One kick byte plus the magic close character.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "\x00V" {
		t.Errorf("unexpected device writes: %q", data)
	}
}

func TestDeviceArmMissingNode(t *testing.T) {
	d := NewDevice(filepath.Join(t.TempDir(), "missing"))
	if err := d.Arm(); err == nil {
		t.Error("expected error arming a missing device node")
	}
}

func TestFakeCountsKicks(t *testing.T) {
	var f Fake

	f.Kick()
	f.Arm()
	f.Kick()
	f.Kick()
	f.Disarm()

	if f.Kicks != 3 {
		t.Errorf("expected 3 kicks, got %d", f.Kicks)
	}
	if f.KicksWhileDisarmed != 1 {
		t.Errorf("expected 1 kick while disarmed, got %d", f.KicksWhileDisarmed)
	}
	if f.Arms != 1 || f.Disarms != 1 {
		t.Errorf("expected 1 arm and 1 disarm, got %d and %d", f.Arms, f.Disarms)
	}
	if f.Armed() {
		t.Error("fake should be disarmed")
	}
}
