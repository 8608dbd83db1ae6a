package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store loads and saves the full wallet list.
type Store interface {
	Load() ([]*Wallet, error)
	Save([]*Wallet) error
}

// JSONStore keeps wallets in a single 0600 JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store backed by path. The file is created on the
// first Save.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load returns nil without error when the file does not exist yet.
func (s *JSONStore) Load() ([]*Wallet, error) {
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reading wallets: %w", err)
	}
	var out []*Wallet
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return out, nil
}

func (s *JSONStore) Save(wallets []*Wallet) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating wallet dir: %w", err)
	}
	data, err := json.MarshalIndent(wallets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// memStore is the Store used when none is given.
type memStore struct{ wallets []*Wallet }

func (s *memStore) Load() ([]*Wallet, error)     { return s.wallets, nil }
func (s *memStore) Save(wallets []*Wallet) error { s.wallets = wallets; return nil }
