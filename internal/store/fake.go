package store

// FakeStore is a test double holding the delay byte in memory.
type FakeStore struct {
	// Value is returned by Read.
	Value uint8

	// Writes records every value written, in order.
	Writes []uint8

	// ReadError, if set, will be returned by Read.
	ReadError error

	// WriteError, if set, will be returned by Write.
	WriteError error
}

// NewFakeStore creates a FakeStore with the given stored value.
func NewFakeStore(value uint8) *FakeStore {
	return &FakeStore{Value: value}
}

// Read returns the scripted value.
func (f *FakeStore) Read() (uint8, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	return f.Value, nil
}

// Write records the value and makes it the new stored value.
func (f *FakeStore) Write(minutes uint8) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Writes = append(f.Writes, minutes)
	f.Value = minutes
	return nil
}
