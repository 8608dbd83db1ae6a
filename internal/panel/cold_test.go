package panel_test

import (
	"context"
	"testing"

	"github.com/Mohsinsiddi/cashdapp/internal/notify"
	"github.com/Mohsinsiddi/cashdapp/internal/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColdDeposit(t *testing.T) {
	acts := &fakeActions{}
	rec := &notify.Recorder{}
	p := panel.NewColdDeposit(acts, rec)
	p.SetBalance(ether(10))

	p.Address.Set("0xnope")
	p.Amount.Set("5")
	_, err := p.Submit(context.Background())
	requireValidation(t, err, panel.TitleInvalidAddress)
	n, _ := rec.Last()
	assert.Equal(t, "Please enter a valid cold storage address", n.Description)

	p.Address.Set(deadAddr)
	p.Amount.Set("11")
	_, err = p.Submit(context.Background())
	requireValidation(t, err, panel.TitleInvalidAmount)
	assert.Empty(t, acts.calls)

	p.Amount.Set("10")
	_, err = p.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, acts.calls, 1)
	assert.Equal(t, "coldDeposit", acts.calls[0].op)
	assert.Equal(t, "", p.Address.Value())
	assert.Equal(t, "", p.Amount.Value())
}

func TestColdRetrieveNeedsSignatureNotBalance(t *testing.T) {
	acts := &fakeActions{}
	rec := &notify.Recorder{}
	p := panel.NewColdRetrieve(acts, rec)

	p.Amount.Set("3")
	_, err := p.Submit(context.Background())
	requireValidation(t, err, panel.TitleMissingSignature)
	n, _ := rec.Last()
	assert.Equal(t, "Please provide a valid signature for retrieval", n.Description)

	p.SetSignature("0x1234")
	p.Amount.Set("0")
	_, err = p.Submit(context.Background())
	requireValidation(t, err, panel.TitleInvalidAmount)
	assert.Empty(t, acts.calls)

	// The balance is zero; retrieval draws on cold storage, not the wallet.
	p.Amount.Set("3")
	_, err = p.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, acts.calls, 1)
	assert.Equal(t, "0x1234", acts.calls[0].extra, "signature is passed through untouched")
	assert.Equal(t, "", p.Signature())
	assert.Equal(t, "", p.Amount.Value())
}
