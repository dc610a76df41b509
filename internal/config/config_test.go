package config

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir: "/home/user/.local/share/tcm",
		LogDir:  "/home/user/.local/share/tcm/log",
		Store:   StoreConfig{Type: "sqlite", DataDir: "/home/user/.local/share/tcm/data"},
		Vault: VaultConfig{
			Type: "s3", Name: "remote",
			S3Bucket: "tcm-snapshots", S3Prefix: "prod", S3Region: "eu-west-1",
		},
		Encryption: EncryptionConfig{
			PublicKeyPath:  "/home/user/.local/share/tcm/keys/tcm.pub",
			PrivateKeyPath: "/home/user/.local/share/tcm/keys/tcm.key",
		},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Store.Type != "sqlite" {
		t.Errorf("Store.Type = %q, want %q", got.Store.Type, "sqlite")
	}
	if got.Store.DataDir != original.Store.DataDir {
		t.Errorf("Store.DataDir = %q, want %q", got.Store.DataDir, original.Store.DataDir)
	}
	if got.Vault.Type != "s3" {
		t.Errorf("Vault.Type = %q, want %q", got.Vault.Type, "s3")
	}
	if got.Vault.S3Bucket != "tcm-snapshots" {
		t.Errorf("Vault.S3Bucket = %q, want %q", got.Vault.S3Bucket, "tcm-snapshots")
	}
	if got.Vault.S3Region != "eu-west-1" {
		t.Errorf("Vault.S3Region = %q, want %q", got.Vault.S3Region, "eu-west-1")
	}
	if got.Encryption.PublicKeyPath != original.Encryption.PublicKeyPath {
		t.Errorf("Encryption.PublicKeyPath = %q, want %q", got.Encryption.PublicKeyPath, original.Encryption.PublicKeyPath)
	}
	if got.Encryption.PrivateKeyPath != original.Encryption.PrivateKeyPath {
		t.Errorf("Encryption.PrivateKeyPath = %q, want %q", got.Encryption.PrivateKeyPath, original.Encryption.PrivateKeyPath)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/tcm")

	if cfg.BaseDir != "/data/tcm" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/tcm")
	}
	if cfg.LogDir != "/data/tcm/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/tcm/log")
	}
	if cfg.Store.Type != "filesystem" {
		t.Errorf("Store.Type = %q, want %q", cfg.Store.Type, "filesystem")
	}
	if cfg.Store.DataDir != "/data/tcm/data" {
		t.Errorf("Store.DataDir = %q, want %q", cfg.Store.DataDir, "/data/tcm/data")
	}
	if cfg.Vault.Type != "filesystem" {
		t.Errorf("Vault.Type = %q, want %q", cfg.Vault.Type, "filesystem")
	}
	if cfg.Vault.FSVaultRoot != "/data/tcm/vault" {
		t.Errorf("Vault.FSVaultRoot = %q, want %q", cfg.Vault.FSVaultRoot, "/data/tcm/vault")
	}
	if cfg.Encryption.PublicKeyPath != "/data/tcm/keys/tcm.pub" {
		t.Errorf("Encryption.PublicKeyPath = %q, want %q", cfg.Encryption.PublicKeyPath, "/data/tcm/keys/tcm.pub")
	}
	if cfg.Encryption.PrivateKeyPath != "/data/tcm/keys/tcm.key" {
		t.Errorf("Encryption.PrivateKeyPath = %q, want %q", cfg.Encryption.PrivateKeyPath, "/data/tcm/keys/tcm.key")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tcm.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.BaseDir != dir {
			t.Errorf("BaseDir = %q, want %q", got.BaseDir, dir)
		}
	})

	t.Run("refuses to overwrite an existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tcm.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}
		if err := Init(path, cfg); err == nil {
			t.Fatal("expected error initializing over an existing config")
		}
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "deeply", "tcm.toml")

		if err := Init(path, NewConfig(dir)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if _, err := ReadFromFile(path); err != nil {
			t.Errorf("ReadFromFile() error = %v", err)
		}
	})
}

func TestReadFromFile_Missing(t *testing.T) {
	if _, err := ReadFromFile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
