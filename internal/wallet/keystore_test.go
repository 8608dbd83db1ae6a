package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormaliseHexKey(t *testing.T) {
	for in, want := range map[string]string{
		"0xabc":    "abc",
		"0XABC":    "ABC",
		"  abc \n": "abc",
		"":         "",
		"0x":       "",
	} {
		assert.Equal(t, want, normaliseHexKey(in), in)
	}
}

func TestKeystoreEnvOverride(t *testing.T) {
	t.Setenv(KeyEnvVar, hardhatKey)
	ks := &Keystore{}

	got, err := ks.Retrieve("cashdapp.anything")
	require.NoError(t, err)
	assert.Equal(t, hardhatKey[2:], got)
}

func TestKeystoreWithoutRing(t *testing.T) {
	t.Setenv(KeyEnvVar, "")
	ks := &Keystore{}

	_, err := ks.Store("main", hardhatKey)
	assert.ErrorIs(t, err, ErrKeystoreUnavailable)
	_, err = ks.Retrieve("cashdapp.main")
	assert.ErrorIs(t, err, ErrKeystoreUnavailable)
	assert.NoError(t, ks.Delete("cashdapp.main"))
}

func TestFileKeystore(t *testing.T) {
	t.Setenv(KeyEnvVar, "")
	ks, err := NewFileKeystore(t.TempDir(), func(string) (string, error) { return "hunter2", nil })
	require.NoError(t, err)

	ref, err := ks.Store("main", hardhatKey)
	require.NoError(t, err)
	got, err := ks.Retrieve(ref)
	require.NoError(t, err)
	assert.Equal(t, hardhatKey[2:], got)

	require.NoError(t, ks.Delete(ref))
	require.NoError(t, ks.Delete(ref), "deleting twice is fine")
	_, err = ks.Retrieve(ref)
	assert.Error(t, err)
}
