package tcm

// Collection keys in the store. These names are part of the persisted
// format and must not change.
const (
	KeyGroups   = "testCaseGroups"
	KeyCases    = "testCases"
	KeyBatches  = "testBatches"
	KeyBatchSeq = "testBatchSeq"
	KeySettings = "appSettings"
)

// Store is the persistence adapter: a synchronous key-value store keyed by
// named collections. Each value is a serialized collection (a JSON array of
// records, or a single JSON object for settings).
//
// Writes are atomic per key. Reads return (nil, nil) for an absent key.
//
// Known limitation: nothing guards against two processes using the same
// store concurrently. Each repository operation is read full collection →
// transform → write full collection; within one process a mutex serializes
// those sequences, but a write from a second process can be silently
// overwritten by a later write that read stale state.
type Store interface {
	// Read returns the last value written for key, or (nil, nil) if the
	// key has never been written.
	Read(key string) ([]byte, error)

	// Write atomically replaces the value for key.
	Write(key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}
