package crypto_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"ciphmsg/internal/crypto"
)

func TestSharedConversationKey_CommutativeOverRole(t *testing.T) {
	addrA, addrB := "ciph:aa01", "ciph:bb02"
	sigA := bytes.Repeat([]byte{0x11}, 64)
	sigB := bytes.Repeat([]byte{0x22}, 64)

	fromA, err := crypto.SharedConversationKey("c1", addrA, addrB, sigA, sigB)
	require.NoError(t, err)
	fromB, err := crypto.SharedConversationKey("c1", addrB, addrA, sigB, sigA)
	require.NoError(t, err)

	require.Equal(t, fromA, fromB, "both parties must derive byte-identical keys")
}

func TestSharedConversationKey_BoundToConversation(t *testing.T) {
	sigA := bytes.Repeat([]byte{0x11}, 64)
	sigB := bytes.Repeat([]byte{0x22}, 64)

	k1, err := crypto.SharedConversationKey("c1", "a", "b", sigA, sigB)
	require.NoError(t, err)
	k2, err := crypto.SharedConversationKey("c2", "a", "b", sigA, sigB)
	require.NoError(t, err)

	require.NotEqual(t, k1, k2)
}

func TestSharedConversationKey_RequiresBothSignatures(t *testing.T) {
	sig := bytes.Repeat([]byte{0x11}, 64)

	_, err := crypto.SharedConversationKey("c1", "a", "b", sig, nil)
	require.ErrorIs(t, err, crypto.ErrSignatureMissing)
	_, err = crypto.SharedConversationKey("c1", "a", "b", nil, sig)
	require.ErrorIs(t, err, crypto.ErrSignatureMissing)
}

func TestDeriveIdentity_Deterministic(t *testing.T) {
	sig := bytes.Repeat([]byte{0x5a}, 64)

	p1, err := crypto.DeriveIdentity("ciph:aa01", sig)
	require.NoError(t, err)
	p2, err := crypto.DeriveIdentity("ciph:aa01", sig)
	require.NoError(t, err)

	require.Equal(t, p1.Serialize(), p2.Serialize(), "same signature must yield the same keypair")

	// A different wallet address yields a different identity.
	p3, err := crypto.DeriveIdentity("ciph:bb02", sig)
	require.NoError(t, err)
	require.NotEqual(t, p1.Serialize(), p3.Serialize())
}
