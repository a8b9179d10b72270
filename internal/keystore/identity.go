package keystore

import (
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"ciphmsg/internal/util/memzero"
)

const identityFile = "identity.enc"

// IdentityStore keeps the derived identity keypair on disk, encrypted under
// a passphrase. The keypair is re-derivable from the wallet signature, so
// this is a convenience cache, not the only copy.
type IdentityStore struct {
	dir string
	mu  sync.Mutex
}

// NewIdentityStore returns a store rooted at dir.
func NewIdentityStore(dir string) *IdentityStore { return &IdentityStore{dir: dir} }

// Save encrypts and writes the identity private key.
func (s *IdentityStore) Save(passphrase string, priv *secp256k1.PrivateKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := priv.Serialize()
	defer memzero.Zero(raw)
	blob, err := sealIdentity(passphrase, raw)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, identityFile), blob, 0o600)
}

// Load decrypts and returns the identity private key.
func (s *IdentityStore) Load(passphrase string) (*secp256k1.PrivateKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(filepath.Join(s.dir, identityFile))
	if err != nil {
		return nil, err
	}
	raw, err := openIdentity(passphrase, blob)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(raw)
	return secp256k1.PrivKeyFromBytes(raw), nil
}

// Exists reports whether an identity has been saved.
func (s *IdentityStore) Exists() bool {
	_, err := os.Stat(filepath.Join(s.dir, identityFile))
	return err == nil
}

// scrypt envelope (parameters fixed here)
func scryptParams() (N, r, p int) { return 1 << 15, 8, 1 }

type identityEnvelope struct {
	Salt []byte
	CT   []byte
}

func sealIdentity(passphrase string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	N, r, p := scryptParams()
	key, err := scrypt.Key([]byte(passphrase), salt, N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	ct := aead.Seal(nil, nonce, plaintext, salt)
	return json.Marshal(identityEnvelope{Salt: salt, CT: ct})
}

func openIdentity(passphrase string, blob []byte) ([]byte, error) {
	var env identityEnvelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, err
	}
	N, r, p := scryptParams()
	key, err := scrypt.Key([]byte(passphrase), env.Salt, N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	return aead.Open(nil, nonce, env.CT, env.Salt)
}
