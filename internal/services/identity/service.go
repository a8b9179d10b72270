package identity

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"ciphmsg/internal/crypto"
	"ciphmsg/internal/keystore"
)

// Service manages the local identity keypair: derived deterministically from
// a wallet signature, cached on disk encrypted under a passphrase.
type Service struct {
	store *keystore.IdentityStore
}

// New returns an identity service backed by the given store.
func New(store *keystore.IdentityStore) *Service { return &Service{store: store} }

// Derive derives the identity keypair from a wallet signature, persists it,
// and returns its ledger address. The same signature always yields the same
// keypair, so re-running after a reinstall restores the identity.
func (s *Service) Derive(passphrase, walletAddress string, signature []byte) (string, error) {
	priv, err := crypto.DeriveIdentity(walletAddress, signature)
	if err != nil {
		return "", err
	}
	if err := s.store.Save(passphrase, priv); err != nil {
		return "", err
	}
	return crypto.AddressFromPublicKey(priv.PubKey()), nil
}

// Load decrypts and returns the stored identity private key.
func (s *Service) Load(passphrase string) (*secp256k1.PrivateKey, error) {
	return s.store.Load(passphrase)
}

// Address returns the ledger address of the stored identity.
func (s *Service) Address(passphrase string) (string, error) {
	priv, err := s.store.Load(passphrase)
	if err != nil {
		return "", err
	}
	return crypto.AddressFromPublicKey(priv.PubKey()), nil
}

// Fingerprint returns a short fingerprint of the stored identity public key.
func (s *Service) Fingerprint(passphrase string) (string, error) {
	priv, err := s.store.Load(passphrase)
	if err != nil {
		return "", err
	}
	return crypto.Fingerprint(priv.PubKey()), nil
}
