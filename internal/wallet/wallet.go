// Package wallet keeps the accounts the dashboard can connect with. Wallet
// metadata lives in a JSON file next to the config; private keys live in the
// OS keychain and are only read to sign.
package wallet

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// Wallet kinds.
const (
	TypeWatchOnly = "watch-only"
	TypeSigning   = "signing"
)

var (
	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletExists   = errors.New("wallet already exists")
	ErrInvalidKey     = errors.New("invalid private key")
	ErrNoWallet       = errors.New("no wallet configured")
	ErrWatchOnly      = errors.New("watch-only wallet cannot sign")
)

// Wallet is one named account. KeyRef points into the keystore and is empty
// for watch-only wallets.
type Wallet struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Type      string `json:"type"`
	KeyRef    string `json:"key_ref,omitempty"`
	IsDefault bool   `json:"is_default"`
	CreatedAt string `json:"created_at"`
}

// CanSign reports whether the wallet holds a key.
func (w *Wallet) CanSign() bool { return w.Type == TypeSigning }

// CommonAddress returns the wallet address as a go-ethereum address.
func (w *Wallet) CommonAddress() common.Address {
	return common.HexToAddress(w.Address)
}
