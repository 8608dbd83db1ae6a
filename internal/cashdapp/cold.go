package cashdapp

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

// RetrievalDigest is the 32-byte message a cold storage owner signs to
// authorise retrieveFromColdStorage:
//
//	keccak256(token ‖ owner ‖ uint256(amount))
//
// The contract decides what it accepts; `cashdapp cold sign` produces an
// EIP-191 signature over this digest.
func RetrievalDigest(token, owner common.Address, amount *big.Int) []byte {
	return crypto.Keccak256(token.Bytes(), owner.Bytes(), math.U256Bytes(new(big.Int).Set(amount)))
}
