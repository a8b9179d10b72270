package crypto

import (
	"crypto/rand"
	"errors"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/chacha20poly1305"

	"ciphmsg/internal/codec"
)

const (
	// NonceBytes is the nonce length of the AEAD; a fresh random nonce is
	// drawn per message and never reused for a given key.
	NonceBytes = chacha20poly1305.NonceSize

	// PubKeyBytes is the length of a compressed secp256k1 point.
	PubKeyBytes = secp256k1.PubKeyBytesLenCompressed

	// PrefixShared tags ciphertext produced under a shared-secret key.
	PrefixShared = "sym:"
	// PrefixEphemeral tags ciphertext produced by the ephemeral-key scheme.
	PrefixEphemeral = "ecies:"
)

// ErrCannotDecrypt is returned when a ciphertext token is malformed or its
// authentication tag does not verify. Callers render a placeholder; this
// never propagates past the message-rendering boundary as a crash.
var ErrCannotDecrypt = errors.New("crypto: cannot decrypt")

// EncryptShared seals plaintext under a shared conversation key and returns
// the wire token "sym:" + hex(nonce || ciphertext+tag).
func EncryptShared(key [KeyBytes]byte, plaintext []byte) (string, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return "", err
	}
	nonce := make([]byte, NonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	ct := aead.Seal(nonce, nonce, plaintext, nil)
	return PrefixShared + codec.Hex(ct), nil
}

// DecryptShared reverses EncryptShared.
func DecryptShared(key [KeyBytes]byte, token string) ([]byte, error) {
	body, ok := strings.CutPrefix(token, PrefixShared)
	if !ok {
		return nil, ErrCannotDecrypt
	}
	raw, ok := codec.FromHex(body)
	if !ok || len(raw) < NonceBytes+chacha20poly1305.Overhead {
		return nil, ErrCannotDecrypt
	}
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, raw[:NonceBytes], raw[NonceBytes:], nil)
	if err != nil {
		return nil, ErrCannotDecrypt
	}
	return pt, nil
}

// EncryptEphemeral seals plaintext to the recipient's long-lived public key
// using a one-shot ECDH exchange. No prior interaction is needed: the
// ephemeral public key travels inside the token, between nonce and
// ciphertext. Wire form: "ecies:" + hex(nonce || ephPub33 || ciphertext+tag).
func EncryptEphemeral(recipient *secp256k1.PublicKey, plaintext []byte) (string, error) {
	eph, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return "", err
	}
	key, err := eciesKey(eph, recipient)
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return "", err
	}
	nonce := make([]byte, NonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	out := make([]byte, 0, NonceBytes+PubKeyBytes+len(plaintext)+chacha20poly1305.Overhead)
	out = append(out, nonce...)
	out = append(out, eph.PubKey().SerializeCompressed()...)
	out = aead.Seal(out, nonce, plaintext, nil)
	return PrefixEphemeral + codec.Hex(out), nil
}

// DecryptEphemeral opens an ephemeral-scheme token using the recipient's
// static private key plus the embedded ephemeral public key.
func DecryptEphemeral(priv *secp256k1.PrivateKey, token string) ([]byte, error) {
	body, ok := strings.CutPrefix(token, PrefixEphemeral)
	if !ok {
		return nil, ErrCannotDecrypt
	}
	raw, ok := codec.FromHex(body)
	if !ok || len(raw) < NonceBytes+PubKeyBytes+chacha20poly1305.Overhead {
		return nil, ErrCannotDecrypt
	}
	nonce := raw[:NonceBytes]
	ephPub, err := secp256k1.ParsePubKey(raw[NonceBytes : NonceBytes+PubKeyBytes])
	if err != nil {
		return nil, ErrCannotDecrypt
	}
	key, err := eciesKey(priv, ephPub)
	if err != nil {
		return nil, ErrCannotDecrypt
	}
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, nonce, raw[NonceBytes+PubKeyBytes:], nil)
	if err != nil {
		return nil, ErrCannotDecrypt
	}
	return pt, nil
}
