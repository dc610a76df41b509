package vault

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"tcm-go/internal/tcm"
)

// MemoryVault is an in-memory implementation of the Vault interface.
// It stores all snapshots in memory, making it useful for testing.
// This implementation is safe for concurrent use.
type MemoryVault struct {
	name      string
	snapshots map[string][]byte
	versions  map[string]int64
	mu        sync.RWMutex
}

// NewMemoryVault creates a new in-memory vault with the given name.
func NewMemoryVault(name string) *MemoryVault {
	return &MemoryVault{
		name:      name,
		snapshots: make(map[string][]byte),
		versions:  make(map[string]int64),
	}
}

// PutSnapshot stores a snapshot under the given name and version.
func (m *MemoryVault) PutSnapshot(name string, r io.Reader, size int64, version int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if version <= m.versions[name] {
		return fmt.Errorf("stale snapshot version %d (vault has %d)", version, m.versions[name])
	}

	m.snapshots[name] = data
	m.versions[name] = version
	return nil
}

// GetSnapshot retrieves the stored snapshot and writes it to w.
func (m *MemoryVault) GetSnapshot(name string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.snapshots[name]
	if !ok {
		return fmt.Errorf("snapshot not found: %s", name)
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

// GetSnapshotVersion returns the stored snapshot's version.
// Returns 0 if nothing has been stored under name.
func (m *MemoryVault) GetSnapshotVersion(name string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.versions[name], nil
}

// ValidateSetup always succeeds for in-memory vault.
func (m *MemoryVault) ValidateSetup() error {
	return nil
}

// Compile-time check that MemoryVault implements tcm.Vault interface
var _ tcm.Vault = (*MemoryVault)(nil)
