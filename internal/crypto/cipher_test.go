package crypto_test

import (
	"strings"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"ciphmsg/internal/crypto"
)

func sharedKey(t *testing.T) [crypto.KeyBytes]byte {
	t.Helper()
	k, err := crypto.SharedConversationKey("c1", "a", "b", []byte("sig-a"), []byte("sig-b"))
	require.NoError(t, err)
	return k
}

func TestEncryptShared_RoundTrip(t *testing.T) {
	key := sharedKey(t)
	plaintext := []byte("hello over the ledger")

	token, err := crypto.EncryptShared(key, plaintext)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(token, crypto.PrefixShared))

	got, err := crypto.DecryptShared(key, token)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestEncryptShared_FreshNoncePerCall(t *testing.T) {
	key := sharedKey(t)

	t1, err := crypto.EncryptShared(key, []byte("same plaintext"))
	require.NoError(t, err)
	t2, err := crypto.EncryptShared(key, []byte("same plaintext"))
	require.NoError(t, err)

	require.NotEqual(t, t1, t2, "nonce reuse would be catastrophic under this cipher")
}

func TestDecryptShared_WrongKeyOrTamper(t *testing.T) {
	key := sharedKey(t)
	token, err := crypto.EncryptShared(key, []byte("secret"))
	require.NoError(t, err)

	other, err := crypto.SharedConversationKey("c2", "a", "b", []byte("sig-a"), []byte("sig-b"))
	require.NoError(t, err)
	_, err = crypto.DecryptShared(other, token)
	require.ErrorIs(t, err, crypto.ErrCannotDecrypt)

	// Flip one hex digit of the ciphertext body.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == '0' {
		tampered[last] = '1'
	} else {
		tampered[last] = '0'
	}
	_, err = crypto.DecryptShared(key, string(tampered))
	require.ErrorIs(t, err, crypto.ErrCannotDecrypt)
}

func TestDecryptShared_Malformed(t *testing.T) {
	key := sharedKey(t)
	for _, token := range []string{"", "sym:", "sym:zz", "ecies:00", "sym:00ff"} {
		_, err := crypto.DecryptShared(key, token)
		require.ErrorIs(t, err, crypto.ErrCannotDecrypt, "token %q", token)
	}
}

func TestEncryptEphemeral_RoundTrip(t *testing.T) {
	recipient, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	plaintext := []byte("first contact, no handshake yet")

	token, err := crypto.EncryptEphemeral(recipient.PubKey(), plaintext)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(token, crypto.PrefixEphemeral))

	got, err := crypto.DecryptEphemeral(recipient, token)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestDecryptEphemeral_WrongRecipient(t *testing.T) {
	recipient, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	stranger, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	token, err := crypto.EncryptEphemeral(recipient.PubKey(), []byte("not for you"))
	require.NoError(t, err)

	_, err = crypto.DecryptEphemeral(stranger, token)
	require.ErrorIs(t, err, crypto.ErrCannotDecrypt)
}

func TestAddress_RoundTrip(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	addr := crypto.AddressFromPublicKey(priv.PubKey())
	pub, err := crypto.PublicKeyFromAddress(addr)
	require.NoError(t, err)
	require.True(t, pub.IsEqual(priv.PubKey()))

	_, err = crypto.PublicKeyFromAddress("not-an-address")
	require.Error(t, err)
}
