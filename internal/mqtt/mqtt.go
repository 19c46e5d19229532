// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"
)

// Topic is the MQTT topic for relay events.
const Topic = "vehicle/led-relay/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "vehicle/led-relay/system"

// Event is a relay transition stamped with wall time for publishing.
type Event struct {
	Timestamp    time.Time
	Type         string // e.g., "OUTPUT_ON", "STAY_ON", "DELAY_PROGRAMMED"
	Power        string // power machine state after the transition
	Ignition     string // "ON" / "OFF"
	Accessory    string // "ON" / "OFF"
	DelayMinutes uint8  // only set for DELAY_PROGRAMMED
}

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a relay event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Relay RelayPayload `json:"relay"`
}

// RelayPayload contains the relay event details.
type RelayPayload struct {
	Timestamp    string       `json:"timestamp"`
	Event        string       `json:"event"`
	Power        string       `json:"power"`
	Ignition     ChannelState `json:"ignition"`
	Accessory    ChannelState `json:"accessory"`
	DelayMinutes uint8        `json:"delay_minutes,omitempty"`
}

// ChannelState represents a single sense input's state.
type ChannelState struct {
	State string `json:"state"`
}

// FormatPayload creates the JSON payload for a relay event.
func FormatPayload(event Event) ([]byte, error) {
	payload := Payload{
		Relay: RelayPayload{
			Timestamp:    event.Timestamp.UTC().Format(time.RFC3339),
			Event:        event.Type,
			Power:        event.Power,
			Ignition:     ChannelState{State: event.Ignition},
			Accessory:    ChannelState{State: event.Accessory},
			DelayMinutes: event.DelayMinutes,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
