package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONStoreMissingFile(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "none.json"))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wallets.json")
	s := NewJSONStore(path)

	in := []*Wallet{{Name: "main", Address: hardhatAddr, Type: TypeSigning, KeyRef: "cashdapp.main", IsDefault: true}}
	require.NoError(t, s.Save(in))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestJSONStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewJSONStore(path).Load()
	assert.ErrorContains(t, err, "parsing")
}
