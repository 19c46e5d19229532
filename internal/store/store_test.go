package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mikelawrence/LED-Relay/internal/relay"
)

func TestFileStoreReadMissing(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "delay"))

	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != relay.DefaultDelayMinutes {
		t.Errorf("expected default %d for missing file, got %d", relay.DefaultDelayMinutes, got)
	}
}

func TestFileStoreReadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "delay")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)

	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != relay.DefaultDelayMinutes {
		t.Errorf("expected default %d for empty file, got %d", relay.DefaultDelayMinutes, got)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nested", "delay"))

	if err := s.Write(120); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != 120 {
		t.Errorf("expected 120, got %d", got)
	}
}

func TestFileStoreReadRaw(t *testing.T) {
	// The byte is accepted as-is, like a raw EEPROM read. Values beyond
	// anything programmable still come back unvalidated.
	path := filepath.Join(t.TempDir(), "delay")
	if err := os.WriteFile(path, []byte{255}, 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)

	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != 255 {
		t.Errorf("expected raw 255, got %d", got)
	}
}

func TestFakeStoreRecordsWrites(t *testing.T) {
	f := NewFakeStore(30)

	if err := f.Write(20); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Write(50); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := f.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != 50 {
		t.Errorf("expected latest write 50, got %d", got)
	}
	if len(f.Writes) != 2 || f.Writes[0] != 20 || f.Writes[1] != 50 {
		t.Errorf("unexpected write record: %v", f.Writes)
	}
}
