package tcm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotName is the name every collection snapshot is archived under in
// the vault.
const SnapshotName = "collections"

// Snapshot is the envelope for a full export of the local collections.
type Snapshot struct {
	Version     int64                      `json:"version"`
	ExportedAt  time.Time                  `json:"exportedAt"`
	Collections map[string]json.RawMessage `json:"collections"`
}

// Exporter archives encrypted snapshots of the whole store to a vault and
// restores them. It is the only component that reads the store wholesale.
type Exporter struct {
	store     Store
	vault     Vault
	encryptor Encryptor
	clock     Clock
	logger    Logger
}

// NewExporter creates an Exporter with the given dependencies.
func NewExporter(store Store, vault Vault, encryptor Encryptor, clock Clock, logger Logger) *Exporter {
	return &Exporter{store: store, vault: vault, encryptor: encryptor, clock: clock, logger: logger}
}

// collectionKeys lists every persisted collection included in a snapshot.
func collectionKeys() []string {
	return []string{KeyGroups, KeyCases, KeyBatches, KeyBatchSeq, KeySettings}
}

// Export reads every collection, wraps them in a versioned envelope,
// encrypts the envelope with the public key, and uploads it to the vault.
// The version is the vault's current version plus one. Returns the version
// that was written.
func (e *Exporter) Export() (int64, error) {
	if !e.encryptor.IsConfigured() {
		return 0, fmt.Errorf("encryption keys are not set up")
	}

	current, err := e.vault.GetSnapshotVersion(SnapshotName)
	if err != nil {
		return 0, fmt.Errorf("checking vault version: %w", err)
	}
	version := current + 1

	snap := Snapshot{
		Version:     version,
		ExportedAt:  e.clock.Now(),
		Collections: make(map[string]json.RawMessage, 5),
	}
	for _, key := range collectionKeys() {
		data, err := e.store.Read(key)
		if err != nil {
			return 0, &PersistenceError{Key: key, Op: "read", Err: err}
		}
		if len(data) > 0 {
			snap.Collections[key] = json.RawMessage(data)
		}
	}

	plain, err := json.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("encoding snapshot: %w", err)
	}

	var cipher bytes.Buffer
	if err := e.encryptor.Encrypt(bytes.NewReader(plain), &cipher); err != nil {
		return 0, fmt.Errorf("encrypting snapshot: %w", err)
	}

	if err := e.vault.PutSnapshot(SnapshotName, &cipher, int64(cipher.Len()), version); err != nil {
		return 0, fmt.Errorf("uploading snapshot: %w", err)
	}

	e.logger.Info("snapshot exported", "version", version, "bytes", len(plain))
	return version, nil
}

// Restore downloads the stored snapshot, decrypts it with the unlocked
// private key, and replaces every local collection it contains. Collections
// absent from the snapshot are left untouched.
func (e *Exporter) Restore(decryptCtx DecryptionContext) (int64, error) {
	version, err := e.vault.GetSnapshotVersion(SnapshotName)
	if err != nil {
		return 0, fmt.Errorf("checking vault version: %w", err)
	}
	if version == 0 {
		return 0, fmt.Errorf("no snapshot in vault")
	}

	var cipher bytes.Buffer
	if err := e.vault.GetSnapshot(SnapshotName, &cipher); err != nil {
		return 0, fmt.Errorf("downloading snapshot: %w", err)
	}

	var plain bytes.Buffer
	if err := decryptCtx.Decrypt(&cipher, &plain); err != nil {
		return 0, fmt.Errorf("decrypting snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(plain.Bytes(), &snap); err != nil {
		return 0, fmt.Errorf("decoding snapshot: %w", err)
	}

	for _, key := range collectionKeys() {
		data, ok := snap.Collections[key]
		if !ok {
			continue
		}
		if err := e.store.Write(key, data); err != nil {
			return 0, &PersistenceError{Key: key, Op: "write", Err: err}
		}
	}

	e.logger.Info("snapshot restored", "version", snap.Version)
	return snap.Version, nil
}
