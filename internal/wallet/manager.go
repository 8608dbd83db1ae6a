package wallet

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Manager is the wallet registry: a Store for metadata plus a keystore for
// signing keys. Wallets are read from the store on first use.
type Manager struct {
	store   Store
	ks      KeystoreBackend
	byName  map[string]*Wallet
	fetched bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets where wallet metadata is persisted.
func WithStore(s Store) Option { return func(m *Manager) { m.store = s } }

// WithKeystore sets where private keys are kept.
func WithKeystore(ks KeystoreBackend) Option { return func(m *Manager) { m.ks = ks } }

// WithInMemoryStore keeps metadata and, unless a keystore is also given,
// keys in memory.
func WithInMemoryStore() Option {
	return func(m *Manager) {
		m.store = &memStore{}
		if m.ks == nil {
			m.ks = NewInMemoryKeystore()
		}
	}
}

// NewManager creates a Manager. Without WithKeystore the OS keychain is
// opened the first time a key is needed.
func NewManager(opts ...Option) *Manager {
	m := &Manager{store: &memStore{}, byName: map[string]*Wallet{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Keystore returns the key backend, opening the OS keychain if none was set.
func (m *Manager) Keystore() KeystoreBackend {
	if m.ks == nil {
		m.ks = DefaultKeystore()
	}
	return m.ks
}

func (m *Manager) fetch() error {
	if m.fetched {
		return nil
	}
	wallets, err := m.store.Load()
	if err != nil {
		return err
	}
	for _, w := range wallets {
		m.byName[w.Name] = w
	}
	m.fetched = true
	return nil
}

func (m *Manager) flush() error { return m.store.Save(m.sorted()) }

func (m *Manager) sorted() []*Wallet {
	out := make([]*Wallet, 0, len(m.byName))
	for _, w := range m.byName {
		out = append(out, w)
	}
	slices.SortFunc(out, func(a, b *Wallet) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// insert registers w under name, refusing duplicates.
func (m *Manager) insert(name string, w *Wallet) error {
	if err := m.fetch(); err != nil {
		return err
	}
	if _, dup := m.byName[name]; dup {
		return fmt.Errorf("%w: %s", ErrWalletExists, name)
	}
	w.Name = name
	if w.CreatedAt == "" {
		w.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	m.byName[name] = w
	return m.flush()
}

// Add registers a watch-only (or otherwise pre-built) wallet.
func (m *Manager) Add(name string, w *Wallet) error {
	if w.Type == "" {
		w.Type = TypeWatchOnly
	}
	return m.insert(name, w)
}

// AddWithKey imports a hex private key as a signing wallet. The key goes to
// the keystore; only its reference is persisted.
func (m *Manager) AddWithKey(name, hexKey string) error {
	if err := m.fetch(); err != nil {
		return err
	}
	if _, dup := m.byName[name]; dup {
		return fmt.Errorf("%w: %s", ErrWalletExists, name)
	}
	key, err := crypto.HexToECDSA(normaliseHexKey(hexKey))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	ref, err := m.Keystore().Store(name, hexKey)
	if err != nil {
		return fmt.Errorf("storing key: %w", err)
	}
	return m.insert(name, &Wallet{
		Address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		Type:    TypeSigning,
		KeyRef:  ref,
	})
}

// Generate creates a signing wallet from a fresh key and returns the key,
// 0x-prefixed, so it can be shown once.
func (m *Manager) Generate(name string) (*Wallet, string, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, "", fmt.Errorf("generating key: %w", err)
	}
	hexKey := hexutil.Encode(crypto.FromECDSA(key))
	if err := m.AddWithKey(name, hexKey); err != nil {
		return nil, "", err
	}
	return m.byName[name], hexKey, nil
}

// Get returns a wallet by name.
func (m *Manager) Get(name string) (*Wallet, error) {
	if err := m.fetch(); err != nil {
		return nil, err
	}
	if w, ok := m.byName[name]; ok {
		return w, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, name)
}

// Resolve picks the session wallet: the named one, else the default.
func (m *Manager) Resolve(name string) (*Wallet, error) {
	if name != "" {
		return m.Get(name)
	}
	if err := m.fetch(); err != nil {
		return nil, err
	}
	if w := m.Default(); w != nil {
		return w, nil
	}
	return nil, ErrNoWallet
}

// Remove deletes a wallet and its stored key.
func (m *Manager) Remove(name string) error {
	w, err := m.Get(name)
	if err != nil {
		return err
	}
	if w.KeyRef != "" {
		if err := m.Keystore().Delete(w.KeyRef); err != nil {
			return fmt.Errorf("deleting key: %w", err)
		}
	}
	delete(m.byName, name)
	return m.flush()
}

// List returns every wallet ordered by name.
func (m *Manager) List() []*Wallet {
	m.fetch() //nolint:errcheck
	return m.sorted()
}

// SetDefault marks name as the default wallet.
func (m *Manager) SetDefault(name string) error {
	if _, err := m.Get(name); err != nil {
		return err
	}
	for _, w := range m.byName {
		w.IsDefault = w.Name == name
	}
	return m.flush()
}

// Default returns the wallet marked default, or the only wallet when there
// is exactly one. Nil otherwise.
func (m *Manager) Default() *Wallet {
	m.fetch() //nolint:errcheck
	var only *Wallet
	for _, w := range m.byName {
		if w.IsDefault {
			return w
		}
		only = w
	}
	if len(m.byName) == 1 {
		return only
	}
	return nil
}

// Signer returns a transaction signer for the named (or default) wallet.
func (m *Manager) Signer(name string) (*Signer, error) {
	w, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}
	if !w.CanSign() {
		return nil, fmt.Errorf("wallet %q: %w", w.Name, ErrWatchOnly)
	}
	return NewSigner(w, m.Keystore()), nil
}
