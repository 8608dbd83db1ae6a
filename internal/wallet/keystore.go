package wallet

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/99designs/keyring"
)

const keychainService = "cashdapp"

// KeyEnvVar, when set, supplies the private key for every signing wallet.
// Used for headless runs where no keychain is reachable.
const KeyEnvVar = "CASHDAPP_KEY"

// ErrKeystoreUnavailable is returned when neither a keychain nor KeyEnvVar
// can serve a key.
var ErrKeystoreUnavailable = errors.New("keystore not available")

// KeystoreBackend stores private keys by reference.
type KeystoreBackend interface {
	Store(name, hexKey string) (string, error)
	Retrieve(ref string) (string, error)
	Delete(ref string) error
}

func keyRef(name string) string { return keychainService + "." + name }

// Keystore keeps keys in a keyring. A nil ring means no backend could be
// opened; only KeyEnvVar can serve keys then.
type Keystore struct {
	ring keyring.Keyring
}

// preferredBackends lists the keyring backends tried on this OS, or nil to
// let keyring choose.
func preferredBackends() []keyring.BackendType {
	if runtime.GOOS != "linux" {
		return nil
	}
	return []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.FileBackend}
}

// DefaultKeystore opens the OS keychain, falling back to the encrypted file
// backend. It never fails; an unreachable keychain surfaces on first use.
func DefaultKeystore() *Keystore {
	attempts := []keyring.Config{
		{
			ServiceName:              keychainService,
			KeychainTrustApplication: true,
			AllowedBackends:          preferredBackends(),
			FilePasswordFunc:         keyring.TerminalPrompt,
		},
		{
			ServiceName:      keychainService,
			AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
			FilePasswordFunc: keyring.TerminalPrompt,
		},
	}
	for _, c := range attempts {
		if ring, err := keyring.Open(c); err == nil {
			return &Keystore{ring: ring}
		}
	}
	return &Keystore{}
}

// NewFileKeystore opens the encrypted file backend under dir.
func NewFileKeystore(dir string, password keyring.PromptFunc) (*Keystore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:      keychainService,
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          dir,
		FilePasswordFunc: password,
	})
	if err != nil {
		return nil, fmt.Errorf("opening file keystore: %w", err)
	}
	return &Keystore{ring: ring}, nil
}

func (k *Keystore) Store(name, hexKey string) (string, error) {
	if k.ring == nil {
		return "", ErrKeystoreUnavailable
	}
	ref := keyRef(name)
	if err := k.ring.Set(keyring.Item{Key: ref, Label: "CashDapp wallet " + name, Data: []byte(hexKey)}); err != nil {
		return "", fmt.Errorf("keychain store: %w", err)
	}
	return ref, nil
}

// Retrieve returns the key without a 0x prefix. KeyEnvVar wins over the
// keychain.
func (k *Keystore) Retrieve(ref string) (string, error) {
	if v, ok := os.LookupEnv(KeyEnvVar); ok && v != "" {
		return normaliseHexKey(v), nil
	}
	if k.ring == nil {
		return "", ErrKeystoreUnavailable
	}
	item, err := k.ring.Get(ref)
	if err != nil {
		return "", fmt.Errorf("keychain retrieve: %w", err)
	}
	return normaliseHexKey(string(item.Data)), nil
}

// Delete is a no-op for keys that are already gone.
func (k *Keystore) Delete(ref string) error {
	if k.ring == nil {
		return nil
	}
	switch err := k.ring.Remove(ref); {
	case err == nil, errors.Is(err, keyring.ErrKeyNotFound), errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func normaliseHexKey(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}

// InMemoryKeystore is a map-backed KeystoreBackend for tests.
type InMemoryKeystore struct {
	keys map[string]string
}

func NewInMemoryKeystore() *InMemoryKeystore {
	return &InMemoryKeystore{keys: map[string]string{}}
}

func (k *InMemoryKeystore) Store(name, hexKey string) (string, error) {
	ref := keyRef(name)
	k.keys[ref] = hexKey
	return ref, nil
}

func (k *InMemoryKeystore) Retrieve(ref string) (string, error) {
	if v, ok := k.keys[ref]; ok {
		return v, nil
	}
	return "", fmt.Errorf("key not found: %s", ref)
}

func (k *InMemoryKeystore) Delete(ref string) error {
	delete(k.keys, ref)
	return nil
}
