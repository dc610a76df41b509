package testutil

import (
	"tcm-go/internal/tcm"
	"tcm-go/internal/vault"
)

// NewTestVault creates a new in-memory vault for testing.
func NewTestVault() tcm.Vault {
	return vault.NewMemoryVault("test-vault")
}
