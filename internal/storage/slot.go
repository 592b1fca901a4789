package storage

// Slot is a single named location holding one serialized value.
type Slot interface {
	// Name returns the slot's key.
	Name() string
	// Read returns the stored value. An empty slot returns an error
	// matching errors.ErrSlotEmpty.
	Read() ([]byte, error)
	// Write replaces the stored value.
	Write(data []byte) error
	// Clear removes the stored value. Clearing an empty slot is not an error.
	Clear() error
}
