package tcm

import "io"

// Vault is an off-box archive for exported snapshots of the local
// collections. Implementations stream data so snapshots never need to fit
// in memory twice.
type Vault interface {
	// PutSnapshot stores a snapshot under the given name and version.
	// size is the number of bytes that will be read from r. version must be
	// strictly greater than the currently stored version for the name;
	// implementations reject non-increasing versions so a stale process
	// cannot clobber a newer export.
	PutSnapshot(name string, r io.Reader, size int64, version int64) error

	// GetSnapshot retrieves the snapshot stored under name and writes it
	// to w.
	GetSnapshot(name string, w io.Writer) error

	// GetSnapshotVersion returns the version of the stored snapshot, or 0
	// if none has been stored under name.
	GetSnapshotVersion(name string) (int64, error)

	// ValidateSetup verifies that the vault is accessible and properly
	// configured.
	ValidateSetup() error
}
