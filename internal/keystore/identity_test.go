package keystore_test

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"ciphmsg/internal/keystore"
)

func TestIdentityStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	s := keystore.NewIdentityStore(dir)
	require.False(t, s.Exists())

	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	require.NoError(t, s.Save("correct horse battery", priv))
	require.True(t, s.Exists())

	got, err := s.Load("correct horse battery")
	require.NoError(t, err)
	require.Equal(t, priv.Serialize(), got.Serialize())
}

func TestIdentityStore_WrongPassphrase(t *testing.T) {
	s := keystore.NewIdentityStore(t.TempDir())

	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	require.NoError(t, s.Save("correct", priv))

	_, err = s.Load("wrong")
	require.Error(t, err)
}
