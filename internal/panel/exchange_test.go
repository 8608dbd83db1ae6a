package panel_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/Mohsinsiddi/cashdapp/internal/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submitter interface {
	Submit(ctx context.Context) (string, error)
	SetBalance(wei *big.Int)
}

func TestAmountForms(t *testing.T) {
	cases := []struct {
		name   string
		build  func(a panel.Actions) (submitter, *panel.AmountField)
		op     string
		capped bool
	}{
		{"wrap", func(a panel.Actions) (submitter, *panel.AmountField) { p := panel.NewWrap(a, nil); return p, &p.Amount }, "wrap", false},
		{"unwrap", func(a panel.Actions) (submitter, *panel.AmountField) {
			p := panel.NewUnwrap(a, nil)
			return p, &p.Amount
		}, "unwrap", true},
		{"onramp", func(a panel.Actions) (submitter, *panel.AmountField) {
			p := panel.NewOnRamp(a, nil)
			return p, &p.Amount
		}, "onramp", false},
		{"offramp", func(a panel.Actions) (submitter, *panel.AmountField) {
			p := panel.NewOffRamp(a, nil)
			return p, &p.Amount
		}, "offramp", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			acts := &fakeActions{}
			p, amount := tc.build(acts)
			p.SetBalance(ether(5))

			amount.Set("0")
			_, err := p.Submit(context.Background())
			requireValidation(t, err, panel.TitleInvalidAmount)

			amount.Set("6")
			_, err = p.Submit(context.Background())
			if tc.capped {
				requireValidation(t, err, panel.TitleInvalidAmount)
				assert.Empty(t, acts.calls)
				amount.Set("5")
				_, err = p.Submit(context.Background())
			}
			require.NoError(t, err)
			require.Len(t, acts.calls, 1)
			assert.Equal(t, tc.op, acts.calls[0].op)
			assert.Equal(t, "", amount.Value())
		})
	}
}

func TestFeeQuotes(t *testing.T) {
	w := panel.NewWrap(&fakeActions{}, nil)
	w.Amount.Set("5")
	assert.Equal(t, "0.005", w.FeeQuote())
	w.Amount.Set("")
	assert.Equal(t, "", w.FeeQuote())

	on := panel.NewOnRamp(&fakeActions{}, nil)
	on.Amount.Set("100")
	assert.Equal(t, "0.50", on.FeeQuote())

	off := panel.NewOffRamp(&fakeActions{}, nil)
	off.Amount.Set("10")
	assert.Equal(t, "0.05", off.FeeQuote())
}
