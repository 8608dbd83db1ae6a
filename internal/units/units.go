package units

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimals is the fixed-point precision of XMRT amounts.
const Decimals = 18

// Fee rates in basis points. The contract owns the authoritative fee; these
// are only used to size the value attached to payable calls and for display.
const (
	WrapFeeBps    int64 = 10 // 0.1% bridge fee
	OnRampFeeBps  int64 = 50 // 0.5% on-ramp fee
	OffRampFeeBps int64 = 50 // 0.5%, display only

	bpsDenominator int64 = 10_000
)

// ErrInvalidAmount is returned when a decimal amount cannot be scaled.
var ErrInvalidAmount = errors.New("invalid amount")

var numericInput = regexp.MustCompile(`^\d*\.?\d*$`)

// IsNumericInput reports whether v may be typed into an amount field.
// The empty string is accepted so a field can be cleared.
func IsNumericInput(v string) bool {
	return numericInput.MatchString(v)
}

// ParseAmount converts a human decimal string ("1.5") into wei.
// Negative values, exponents, and more than 18 fractional digits are rejected.
func ParseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." || !numericInput.MatchString(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > Decimals {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, s, Decimals)
	}

	norm := strings.TrimSuffix(s, ".")
	if strings.HasPrefix(norm, ".") {
		norm = "0" + norm
	}
	d, err := decimal.NewFromString(norm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	return d.Shift(Decimals).BigInt(), nil
}

// ParsePositive is ParseAmount that also rejects zero.
func ParsePositive(s string) (*big.Int, error) {
	wei, err := ParseAmount(s)
	if err != nil {
		return nil, err
	}
	if wei.Sign() <= 0 {
		return nil, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	return wei, nil
}

// Format renders wei as the shortest exact decimal string ("50", "0.5").
func Format(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -Decimals).String()
}

// FormatFixed renders wei rounded to exactly places fraction digits.
func FormatFixed(wei *big.Int, places int32) string {
	if wei == nil {
		wei = new(big.Int)
	}
	return decimal.NewFromBigInt(wei, -Decimals).StringFixed(places)
}

// Display renders wei with between 2 and 4 fraction digits, the format used
// for balances and quotes on every panel.
func Display(wei *big.Int) string {
	s := FormatFixed(wei, 4)
	dot := strings.IndexByte(s, '.')
	for len(s)-dot-1 > 2 && strings.HasSuffix(s, "0") {
		s = s[:len(s)-1]
	}
	return s
}

// Fee returns amount * bps / 10000, truncated toward zero.
func Fee(amount *big.Int, bps int64) *big.Int {
	fee := new(big.Int).Mul(amount, big.NewInt(bps))
	return fee.Quo(fee, big.NewInt(bpsDenominator))
}

// BpsPercent renders a basis-point rate as a percentage label ("0.1%").
func BpsPercent(bps int64) string {
	return decimal.New(bps, -2).String() + "%"
}
