// ABOUTME: Charm KV implementation of the Store interface
// ABOUTME: Local badger-backed KV with optional cloud sync via SSH key auth
package storage

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/kv"
)

// Config holds charm KV configuration.
type Config struct {
	Host     string
	DBName   string
	AutoSync bool
}

// CharmStore is a Store backed by charm KV. Writes sync to the cloud in
// the background when AutoSync is enabled.
type CharmStore struct {
	kv     *kv.KV
	config Config
	mu     sync.Mutex
}

// OpenCharm opens (or creates) the charm KV database named in cfg.
func OpenCharm(cfg Config) (*CharmStore, error) {
	// kv.OpenWithDefaults reads CHARM_HOST at open time
	if cfg.Host != "" {
		os.Setenv("CHARM_HOST", cfg.Host)
	}

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	s := &CharmStore{kv: db, config: cfg}

	// Pull remote data on startup
	if cfg.AutoSync {
		_ = db.Sync()
	}

	return s, nil
}

// Close closes the KV database.
func (s *CharmStore) Close() error {
	if s.kv != nil {
		err := s.kv.Close()
		s.kv = nil
		return err
	}
	return nil
}

// Get retrieves a value by key.
func (s *CharmStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Get([]byte(key))
}

// Set stores a value and syncs to the cloud when enabled.
func (s *CharmStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	if s.config.AutoSync {
		_ = s.kv.Sync()
	}
	return nil
}

// Sync manually triggers a sync with the cloud.
func (s *CharmStore) Sync() error {
	return s.kv.Sync()
}

// Reset wipes all local data (nuclear option).
func (s *CharmStore) Reset() error {
	return s.kv.Reset()
}
