package app

import (
	"fmt"
	"os"
	"time"

	"tcm-go/internal/config"
	"tcm-go/internal/encryption"
	"tcm-go/internal/store"
	"tcm-go/internal/tcm"
	"tcm-go/internal/vault"
)

// TCMApp is the application layer between the CLI and the Service.
// It constructs all dependencies from config, exposes the service and
// exporter to the commands, and manages the store lifecycle on Close.
type TCMApp struct {
	cfg       *config.Config
	store     tcm.Store
	vault     tcm.Vault
	encryptor tcm.Encryptor
	service   *tcm.Service
	exporter  *tcm.Exporter
	logFile   *os.File
}

// NewTCMApp creates a fully wired TCMApp from the given config.
// operation identifies the CLI command being run (e.g. "CaseAdd", "BatchCreate").
// The caller must call Close when done.
func NewTCMApp(cfg *config.Config, operation string) (*TCMApp, error) {
	st, err := store.NewStoreFromConfig(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	v, err := vault.NewVaultFromConfig(cfg.Vault)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating vault: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z") + "-" + operation
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	adapter := &slogAdapter{l: logger}
	clock := tcm.RealClock{}
	idgen := tcm.UUIDGenerator{}

	groups := tcm.NewGroupRepository(st, adapter, clock, idgen)
	cases := tcm.NewCaseRepository(st, adapter, clock, idgen)
	batches := tcm.NewBatchRepository(st, adapter, clock)
	settings := tcm.NewSettingsRepository(st, adapter)

	svc := tcm.NewService(groups, cases, batches, settings, adapter)
	exporter := tcm.NewExporter(st, v, enc, clock, adapter)

	return &TCMApp{
		cfg:       cfg,
		store:     st,
		vault:     v,
		encryptor: enc,
		service:   svc,
		exporter:  exporter,
		logFile:   logFile,
	}, nil
}

// Service returns the wired test-case service.
func (a *TCMApp) Service() *tcm.Service { return a.service }

// Exporter returns the wired snapshot exporter.
func (a *TCMApp) Exporter() *tcm.Exporter { return a.exporter }

// Encryptor returns the wired encryptor.
func (a *TCMApp) Encryptor() tcm.Encryptor { return a.encryptor }

// Vault returns the wired snapshot vault.
func (a *TCMApp) Vault() tcm.Vault { return a.vault }

// Close closes the store and the log file.
func (a *TCMApp) Close() error {
	var firstErr error

	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
