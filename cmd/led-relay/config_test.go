package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mikelawrence/LED-Relay/internal/gpio"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.GPIO.Chip != gpio.DefaultChip {
		t.Errorf("unexpected chip %q", cfg.GPIO.Chip)
	}
	if cfg.GPIO.PinIgnition != gpio.DefaultPinIgnition || cfg.GPIO.PinAccessory != gpio.DefaultPinAccessory {
		t.Errorf("unexpected pins %d/%d", cfg.GPIO.PinIgnition, cfg.GPIO.PinAccessory)
	}
	if cfg.Timing.PollMs != 100 {
		t.Errorf("expected poll 100ms, got %d", cfg.Timing.PollMs)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Error("empty path should return defaults")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
mqtt:
  broker: tcp://10.0.0.5:1883
timing:
  poll_ms: 50
gpio:
  pin_ignition: 17
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MQTT.Broker != "tcp://10.0.0.5:1883" {
		t.Errorf("broker override lost: %q", cfg.MQTT.Broker)
	}
	if cfg.Timing.PollMs != 50 {
		t.Errorf("poll override lost: %d", cfg.Timing.PollMs)
	}
	if cfg.GPIO.PinIgnition != 17 {
		t.Errorf("pin override lost: %d", cfg.GPIO.PinIgnition)
	}
	// Untouched fields keep their defaults.
	if cfg.GPIO.PinAccessory != gpio.DefaultPinAccessory {
		t.Errorf("accessory pin should keep default, got %d", cfg.GPIO.PinAccessory)
	}
	if cfg.Timing.HeartbeatMinutes != 15 {
		t.Errorf("heartbeat should keep default, got %d", cfg.Timing.HeartbeatMinutes)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mqtt: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero poll", func(c *Config) { c.Timing.PollMs = 0 }},
		{"negative heartbeat", func(c *Config) { c.Timing.HeartbeatMinutes = -1 }},
		{"empty chip", func(c *Config) { c.GPIO.Chip = "" }},
		{"same pins", func(c *Config) { c.GPIO.PinAccessory = c.GPIO.PinIgnition }},
		{"no relay pins", func(c *Config) { c.GPIO.RelayPins = nil }},
		{"empty broker", func(c *Config) { c.MQTT.Broker = "" }},
		{"empty store path", func(c *Config) { c.Store.Path = "" }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
