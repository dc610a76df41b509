package testutil

import (
	"tcm-go/internal/store"
	"tcm-go/internal/tcm"
)

// NewTestStore creates a new in-memory collection store for testing.
func NewTestStore() tcm.Store {
	return store.NewMemoryStore()
}
