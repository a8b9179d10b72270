package crypto

import (
	"crypto/sha256"
	"errors"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"ciphmsg/internal/codec"
)

// addressPrefix precedes the hex-encoded compressed public key in a ledger
// address.
const addressPrefix = "ciph:"

// AddressFromPublicKey returns the ledger address for a public key.
func AddressFromPublicKey(pub *secp256k1.PublicKey) string {
	return addressPrefix + codec.Hex(pub.SerializeCompressed())
}

// PublicKeyFromAddress recovers the long-lived public key encoded in a
// ledger address. This is what lets the ephemeral scheme encrypt to a party
// it has never spoken to.
func PublicKeyFromAddress(address string) (*secp256k1.PublicKey, error) {
	body, ok := strings.CutPrefix(address, addressPrefix)
	if !ok {
		return nil, errors.New("crypto: not a ledger address")
	}
	raw, ok := codec.FromHex(body)
	if !ok || len(raw) != PubKeyBytes {
		return nil, errors.New("crypto: malformed ledger address")
	}
	return secp256k1.ParsePubKey(raw)
}

// Fingerprint returns a short hex digest of a public key for display.
func Fingerprint(pub *secp256k1.PublicKey) string {
	sum := sha256.Sum256(pub.SerializeCompressed())
	return codec.Hex(sum[:10])
}
