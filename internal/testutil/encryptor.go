package testutil

import (
	"tcm-go/internal/encryption"
	"tcm-go/internal/tcm"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() tcm.Encryptor {
	return encryption.NewTestEncryptor()
}
