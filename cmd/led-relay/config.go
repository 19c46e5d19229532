package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mikelawrence/LED-Relay/internal/gpio"
	"github.com/mikelawrence/LED-Relay/internal/store"
)

// Config is the daemon configuration. Defaults match a stock install;
// a YAML file overrides defaults and flags override the file.
type Config struct {
	GPIO     GPIOConfig     `yaml:"gpio"`
	Timing   TimingConfig   `yaml:"timing"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	HTTP     HTTPConfig     `yaml:"http"`
	Store    StoreConfig    `yaml:"store"`
	Watchdog WatchdogConfig `yaml:"watchdog"`
}

// GPIOConfig names the chip and pins (BCM numbering).
type GPIOConfig struct {
	Chip         string `yaml:"chip"`
	PinIgnition  int    `yaml:"pin_ignition"`
	PinAccessory int    `yaml:"pin_accessory"`
	RelayPins    []int  `yaml:"relay_pins"`
}

// TimingConfig controls the run loop cadence.
type TimingConfig struct {
	PollMs           int `yaml:"poll_ms"`
	HeartbeatMinutes int `yaml:"heartbeat_minutes"` // 0 disables heartbeats
}

// MQTTConfig names the broker.
type MQTTConfig struct {
	Broker string `yaml:"broker"`
}

// HTTPConfig controls the status server.
type HTTPConfig struct {
	Addr string `yaml:"addr"` // empty disables the status server
}

// StoreConfig locates the persisted delay byte.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// WatchdogConfig names the hardware watchdog node.
type WatchdogConfig struct {
	Device string `yaml:"device"` // empty disables the hardware watchdog
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		GPIO: GPIOConfig{
			Chip:         gpio.DefaultChip,
			PinIgnition:  gpio.DefaultPinIgnition,
			PinAccessory: gpio.DefaultPinAccessory,
			RelayPins:    gpio.DefaultRelayPins,
		},
		Timing: TimingConfig{
			PollMs:           100,
			HeartbeatMinutes: 15,
		},
		MQTT: MQTTConfig{
			Broker: "tcp://192.168.1.200:1883",
		},
		HTTP: HTTPConfig{
			Addr: ":80",
		},
		Store: StoreConfig{
			Path: store.DefaultPath,
		},
		Watchdog: WatchdogConfig{
			Device: "/dev/watchdog",
		},
	}
}

// LoadConfig reads a YAML config file on top of the defaults. An empty
// path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the daemon cannot run with.
func (c Config) Validate() error {
	if c.Timing.PollMs < 1 {
		return fmt.Errorf("timing.poll_ms must be at least 1, got %d", c.Timing.PollMs)
	}
	if c.Timing.HeartbeatMinutes < 0 {
		return fmt.Errorf("timing.heartbeat_minutes must not be negative, got %d", c.Timing.HeartbeatMinutes)
	}
	if c.GPIO.Chip == "" {
		return fmt.Errorf("gpio.chip must not be empty")
	}
	if c.GPIO.PinIgnition == c.GPIO.PinAccessory {
		return fmt.Errorf("gpio.pin_ignition and gpio.pin_accessory must differ, both are %d", c.GPIO.PinIgnition)
	}
	if len(c.GPIO.RelayPins) == 0 {
		return fmt.Errorf("gpio.relay_pins must name at least one pin")
	}
	if c.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker must not be empty")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	return nil
}
