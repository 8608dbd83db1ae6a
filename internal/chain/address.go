package chain

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// IsValidAddress reports whether s is a usable EVM address: "0x" followed by
// 40 hex characters. An all-lowercase address is accepted as is; any other
// casing must match the EIP-55 checksum exactly.
func IsValidAddress(s string) bool {
	if len(s) != 42 || !strings.HasPrefix(s, "0x") {
		return false
	}
	if _, err := hex.DecodeString(s[2:]); err != nil {
		return false
	}
	if strings.ToLower(s) == s {
		return true
	}
	return ChecksumAddress(s) == s
}

// ChecksumAddress returns the EIP-55 mixed-case form of a 40-hex-char
// address, with or without the 0x prefix. Input length is not validated.
func ChecksumAddress(addr string) string {
	lower := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X"))

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	hash := hex.EncodeToString(h.Sum(nil))

	var out strings.Builder
	out.WriteString("0x")
	for i, c := range lower {
		if c >= 'a' && c <= 'f' && hash[i] >= '8' {
			out.WriteByte(byte(c - 32))
			continue
		}
		out.WriteByte(byte(c))
	}
	return out.String()
}
