package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageHelpersKeepPrefixAndText(t *testing.T) {
	cases := []struct {
		name   string
		render func(string) string
		prefix string
	}{
		{"success", Success, "✓"},
		{"warn", Warn, "⚠"},
		{"err", Err, "✗"},
		{"info", Info, "ℹ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := tc.render("wrapped 5 XMRT")
			assert.Contains(t, out, tc.prefix)
			assert.Contains(t, out, "wrapped 5 XMRT")
		})
	}
}

func TestTruncateAddr(t *testing.T) {
	assert.Equal(t, "0x0000…dEaD", TruncateAddr("0x000000000000000000000000000000000000dEaD"))
	assert.Equal(t, "0xabc", TruncateAddr("0xabc"))
	assert.Equal(t, "", TruncateAddr(""))
}

func TestBannerNamesApp(t *testing.T) {
	assert.Contains(t, Banner(), "CashDapp")
}
