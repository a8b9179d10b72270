package crypto

import (
	"crypto/sha256"
	"errors"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/hkdf"

	"ciphmsg/internal/util/memzero"
)

const (
	// KeyBytes is the length of every derived symmetric key.
	KeyBytes = 32

	sharedSaltPrefix = "ciph_msg:shared:v2:"
	sharedInfo       = "ciph_msg-conversation-key"
	identitySalt     = "ciph_msg:identity:v1:"
	identityInfo     = "ciph_msg-identity-keypair"
	eciesInfo        = "ciph_msg-ecies"
)

// ErrSignatureMissing is returned when shared-secret derivation is attempted
// before both parties' signatures are available. Callers treat this as "not
// yet ready" and wait for the counterpart's signature to arrive on ledger.
var ErrSignatureMissing = errors.New("crypto: both signatures required for shared key derivation")

// SharedConversationKey derives the symmetric key for a conversation from the
// two parties' handshake signatures.
//
// The derivation is commutative over participant role: both sides sort the
// addresses lexicographically, order the signatures by the same address
// ordering, and feed sigLow || sigHigh || "addr1:addr2" into HKDF-SHA256 with
// a salt bound to the conversation id. Given the same inputs, both parties
// compute byte-identical keys with no further communication.
func SharedConversationKey(conversationID, myAddress, peerAddress string, mySig, peerSig []byte) ([KeyBytes]byte, error) {
	var key [KeyBytes]byte
	if len(mySig) == 0 || len(peerSig) == 0 {
		return key, ErrSignatureMissing
	}

	addrLow, addrHigh := myAddress, peerAddress
	sigLow, sigHigh := mySig, peerSig
	if addrLow > addrHigh {
		addrLow, addrHigh = addrHigh, addrLow
		sigLow, sigHigh = sigHigh, sigLow
	}

	ikm := make([]byte, 0, len(sigLow)+len(sigHigh)+len(addrLow)+len(addrHigh)+1)
	ikm = append(ikm, sigLow...)
	ikm = append(ikm, sigHigh...)
	ikm = append(ikm, addrLow...)
	ikm = append(ikm, ':')
	ikm = append(ikm, addrHigh...)
	defer memzero.Zero(ikm)

	salt := []byte(sharedSaltPrefix + conversationID)
	r := hkdf.New(sha256.New, ikm, salt, []byte(sharedInfo))
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return key, err
	}
	return key, nil
}

// DeriveIdentity derives the long-lived secp256k1 keypair from a wallet
// signature. Deterministic: the same signature always yields the same
// keypair, so the identity survives reinstallation as long as the user can
// reproduce the signature.
func DeriveIdentity(walletAddress string, signature []byte) (*secp256k1.PrivateKey, error) {
	if len(signature) == 0 {
		return nil, errors.New("crypto: empty signature")
	}
	salt := []byte(identitySalt + walletAddress)
	r := hkdf.New(sha256.New, signature, salt, []byte(identityInfo))
	seed := make([]byte, KeyBytes)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, err
	}
	defer memzero.Zero(seed)
	return secp256k1.PrivKeyFromBytes(seed), nil
}

// eciesKey derives the per-message key for the ephemeral scheme: plain ECDH
// between one private and one public key, shared-point x-coordinate as HKDF
// input keying material, empty salt.
func eciesKey(priv *secp256k1.PrivateKey, pub *secp256k1.PublicKey) ([KeyBytes]byte, error) {
	var key [KeyBytes]byte
	shared := secp256k1.GenerateSharedSecret(priv, pub)
	defer memzero.Zero(shared)

	r := hkdf.New(sha256.New, shared, nil, []byte(eciesInfo))
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return key, err
	}
	return key, nil
}
