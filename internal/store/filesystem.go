package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSystemStore persists each collection as a JSON file under a data
// directory:
//
//	<dataDir>/
//	  testCaseGroups.json
//	  testCases.json
//	  ...
//
// Writes go to a temp file in the same directory and are renamed into
// place, so a crash mid-write never leaves a truncated collection behind.
type FileSystemStore struct {
	dataDir string
}

// NewFileSystemStore creates a store rooted at dataDir, creating the
// directory if needed.
func NewFileSystemStore(dataDir string) (*FileSystemStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileSystemStore{dataDir: dataDir}, nil
}

func (s *FileSystemStore) path(key string) string {
	return filepath.Join(s.dataDir, key+".json")
}

// Read returns the contents of the collection file, or (nil, nil) if the
// file does not exist.
func (s *FileSystemStore) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Write atomically replaces the collection file via temp file + rename.
func (s *FileSystemStore) Write(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dataDir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", key, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", key, err)
	}

	if err := os.Rename(tmpPath, s.path(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; files are closed after every operation.
func (s *FileSystemStore) Close() error { return nil }
