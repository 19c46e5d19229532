package mqtt

import (
	"errors"
	"testing"
	"time"
)

var testTime = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func TestFormatPayload(t *testing.T) {
	payload, err := FormatPayload(Event{
		Timestamp: testTime,
		Type:      "OUTPUT_ON",
		Power:     "OUTPUT_ON",
		Ignition:  "ON",
		Accessory: "ON",
	})
	if err != nil {
		t.Fatalf("FormatPayload: %v", err)
	}

	want := `{"relay":{"timestamp":"2026-01-02T15:04:05Z","event":"OUTPUT_ON","power":"OUTPUT_ON","ignition":{"state":"ON"},"accessory":{"state":"ON"}}}`
	if string(payload) != want {
		t.Errorf("payload mismatch:\n got %s\nwant %s", payload, want)
	}
}

func TestFormatPayloadDelayProgrammed(t *testing.T) {
	payload, err := FormatPayload(Event{
		Timestamp:    testTime,
		Type:         "DELAY_PROGRAMMED",
		Power:        "STAY_ON",
		Ignition:     "ON",
		Accessory:    "ON",
		DelayMinutes: 20,
	})
	if err != nil {
		t.Fatalf("FormatPayload: %v", err)
	}

	want := `{"relay":{"timestamp":"2026-01-02T15:04:05Z","event":"DELAY_PROGRAMMED","power":"STAY_ON","ignition":{"state":"ON"},"accessory":{"state":"ON"},"delay_minutes":20}}`
	if string(payload) != want {
		t.Errorf("payload mismatch:\n got %s\nwant %s", payload, want)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	payload, err := FormatSystemPayload(SystemEvent{
		Timestamp: testTime,
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	})
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}

	want := `{"system":{"timestamp":"2026-01-02T15:04:05Z","event":"SHUTDOWN","reason":"SIGTERM"}}`
	if string(payload) != want {
		t.Errorf("payload mismatch:\n got %s\nwant %s", payload, want)
	}
}

func TestFormatSystemPayloadOmitsEmptyReason(t *testing.T) {
	payload, err := FormatSystemPayload(SystemEvent{
		Timestamp: testTime,
		Event:     "HEARTBEAT",
	})
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}

	want := `{"system":{"timestamp":"2026-01-02T15:04:05Z","event":"HEARTBEAT"}}`
	if string(payload) != want {
		t.Errorf("payload mismatch:\n got %s\nwant %s", payload, want)
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"status":{"event":"STARTUP"}}`)
	payload, err := FormatSystemPayload(SystemEvent{
		Timestamp:  testTime,
		Event:      "STARTUP",
		RawPayload: raw,
	})
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("expected raw payload passthrough, got %s", payload)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	err := f.Publish(Event{Timestamp: testTime, Type: "STAY_ON", Power: "STAY_ON", Ignition: "ON", Accessory: "ON"})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(f.Events) != 1 || f.Events[0].Type != "STAY_ON" {
		t.Errorf("unexpected events: %v", f.Events)
	}
	if len(f.Payloads) != 1 {
		t.Errorf("expected 1 payload, got %d", len(f.Payloads))
	}

	err = f.PublishSystem(SystemEvent{Timestamp: testTime, Event: "STARTUP", Retained: true})
	if err != nil {
		t.Fatalf("PublishSystem: %v", err)
	}
	if len(f.SystemEvents) != 1 || !f.SystemEvents[0].Retained {
		t.Errorf("unexpected system events: %v", f.SystemEvents)
	}

	f.Reset()
	if len(f.Events) != 0 || len(f.SystemEvents) != 0 {
		t.Error("Reset should clear recorded events")
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("publish broken")
	f.PublishSystemError = errors.New("system broken")

	if err := f.Publish(Event{}); err == nil {
		t.Error("expected Publish error")
	}
	if err := f.PublishSystem(SystemEvent{}); err == nil {
		t.Error("expected PublishSystem error")
	}
	if len(f.Events) != 0 || len(f.SystemEvents) != 0 {
		t.Error("failed publishes must not be recorded")
	}
}
