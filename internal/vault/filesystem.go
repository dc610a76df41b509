package vault

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tcm-go/internal/tcm"
)

// FileSystemVault is a filesystem-based implementation of the Vault
// interface. It stores snapshots as files in a directory structure:
//
//	<root>/
//	  snapshots/
//	    <name>.snap     (encrypted snapshot payload)
//	    <name>.version  (current version marker)
type FileSystemVault struct {
	name        string
	root        string
	snapshotDir string
}

// NewFileSystemVault creates a new filesystem vault rooted at the given path.
func NewFileSystemVault(name, root string) (*FileSystemVault, error) {
	snapshotDir := filepath.Join(root, "snapshots")

	if err := os.MkdirAll(snapshotDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	return &FileSystemVault{
		name:        name,
		root:        root,
		snapshotDir: snapshotDir,
	}, nil
}

// PutSnapshot stores a snapshot under the given name and version.
func (v *FileSystemVault) PutSnapshot(name string, r io.Reader, size int64, version int64) error {
	current, err := v.GetSnapshotVersion(name)
	if err != nil {
		return err
	}
	if version <= current {
		return fmt.Errorf("stale snapshot version %d (vault has %d)", version, current)
	}

	destPath := filepath.Join(v.snapshotDir, name+".snap")
	if err := v.writeFile(destPath, r, size); err != nil {
		return err
	}

	versionPath := filepath.Join(v.snapshotDir, name+".version")
	versionData := strconv.FormatInt(version, 10)
	return os.WriteFile(versionPath, []byte(versionData), 0644)
}

// GetSnapshot retrieves the stored snapshot and writes it to w.
func (v *FileSystemVault) GetSnapshot(name string, w io.Writer) error {
	srcPath := filepath.Join(v.snapshotDir, name+".snap")
	f, err := os.Open(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("snapshot not found: %s", name)
		}
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	return nil
}

// GetSnapshotVersion returns the stored snapshot's version.
// Returns 0 if no version file exists.
func (v *FileSystemVault) GetSnapshotVersion(name string) (int64, error) {
	versionPath := filepath.Join(v.snapshotDir, name+".version")
	data, err := os.ReadFile(versionPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading version file: %w", err)
	}

	version, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing version: %w", err)
	}
	return version, nil
}

// ValidateSetup verifies that the vault directories are accessible.
func (v *FileSystemVault) ValidateSetup() error {
	info, err := os.Stat(v.root)
	if err != nil {
		return fmt.Errorf("vault root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault root is not a directory: %s", v.root)
	}

	info, err = os.Stat(v.snapshotDir)
	if err != nil {
		return fmt.Errorf("vault directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault path is not a directory: %s", v.snapshotDir)
	}

	return nil
}

// writeFile writes data from r to the specified path using atomic write (temp file + rename).
func (v *FileSystemVault) writeFile(destPath string, r io.Reader, expectedSize int64) error {
	// Create temp file in the same directory to ensure atomic rename works
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on failure
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileSystemVault implements tcm.Vault interface
var _ tcm.Vault = (*FileSystemVault)(nil)
