package message_test

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"ciphmsg/internal/crypto"
	"ciphmsg/internal/domain"
	"ciphmsg/internal/payload"
	messagesvc "ciphmsg/internal/services/message"
)

// memKeys is an in-memory domain.KeyStore for tests.
type memKeys struct {
	m map[string]domain.ConversationKey
}

func newMemKeys() *memKeys { return &memKeys{m: make(map[string]domain.ConversationKey)} }

func (s *memKeys) Get(id string) (domain.ConversationKey, bool, error) {
	k, ok := s.m[id]
	return k, ok, nil
}
func (s *memKeys) Put(k domain.ConversationKey) error { s.m[k.ConversationID] = k; return nil }
func (s *memKeys) Has(id string) (bool, error)        { _, ok := s.m[id]; return ok, nil }
func (s *memKeys) Clear() error                       { s.m = make(map[string]domain.ConversationKey); return nil }
func (s *memKeys) Close() error                       { return nil }

// fakeLedger serves canned contextual-message entries.
type fakeLedger struct {
	entries []domain.LedgerEntry
	err     error
}

func (f *fakeLedger) HandshakesBySender(context.Context, string, int) ([]domain.LedgerEntry, error) {
	return nil, nil
}
func (f *fakeLedger) HandshakesByReceiver(context.Context, string, int) ([]domain.LedgerEntry, error) {
	return nil, nil
}
func (f *fakeLedger) ContextualMessagesBySender(context.Context, string, string, int) ([]domain.LedgerEntry, error) {
	return f.entries, f.err
}
func (f *fakeLedger) Handshakes(context.Context, string, int) ([]domain.LedgerEntry, []domain.LedgerEntry) {
	return nil, nil
}

func entryFor(t *testing.T, alias, token string) domain.LedgerEntry {
	t.Helper()
	raw, err := payload.BuildContextual(alias, token)
	require.NoError(t, err)
	return domain.LedgerEntry{
		EntryID:    "e1",
		Sender:     "ciph:bb02",
		BlockTime:  100,
		RawPayload: hex.EncodeToString(raw),
	}
}

func TestEstablishKey_ThenEncryptShared(t *testing.T) {
	keys := newMemKeys()
	svc := messagesvc.New(keys, &fakeLedger{}, 0, nil)

	require.NoError(t, svc.EstablishKey("c1", "ciph:aa01", "ciph:bb02", []byte("sig-a"), []byte("sig-b")))

	raw, err := svc.Encrypt("c1", "alice", "ciph:bb02", []byte("hi"))
	require.NoError(t, err)

	m := payload.ParseContextual(raw)
	require.NotNil(t, m)
	require.True(t, strings.HasPrefix(m.Cipher, crypto.PrefixShared))
}

func TestEstablishKey_OneSignatureNotReady(t *testing.T) {
	keys := newMemKeys()
	svc := messagesvc.New(keys, &fakeLedger{}, 0, nil)

	err := svc.EstablishKey("c1", "ciph:aa01", "ciph:bb02", []byte("sig-a"), nil)
	require.ErrorIs(t, err, crypto.ErrSignatureMissing)

	has, err := keys.Has("c1")
	require.NoError(t, err)
	require.False(t, has, "no key may be stored until both signatures exist")
}

// Before a key is established, sending falls back to the ephemeral scheme
// against the recipient's address.
func TestEncrypt_EphemeralFallback(t *testing.T) {
	recipient, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	addr := crypto.AddressFromPublicKey(recipient.PubKey())

	svc := messagesvc.New(newMemKeys(), &fakeLedger{}, 0, nil)
	raw, err := svc.Encrypt("c1", "alice", addr, []byte("first contact"))
	require.NoError(t, err)

	m := payload.ParseContextual(raw)
	require.NotNil(t, m)
	require.True(t, strings.HasPrefix(m.Cipher, crypto.PrefixEphemeral))

	pt, err := crypto.DecryptEphemeral(recipient, m.Cipher)
	require.NoError(t, err)
	require.Equal(t, []byte("first contact"), pt)
}

func TestHistory_DecryptsSharedScheme(t *testing.T) {
	keys := newMemKeys()
	svc := messagesvc.New(keys, nil, 0, nil)
	require.NoError(t, svc.EstablishKey("c1", "ciph:aa01", "ciph:bb02", []byte("sig-a"), []byte("sig-b")))

	k, _, err := keys.Get("c1")
	require.NoError(t, err)
	token, err := crypto.EncryptShared(k.Key, []byte("hello"))
	require.NoError(t, err)

	svc = messagesvc.New(keys, &fakeLedger{entries: []domain.LedgerEntry{entryFor(t, "alice", token)}}, 0, nil)
	msgs, err := svc.History(context.Background(), "c1", "ciph:bb02", "alice", nil)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, domain.DecryptOK, msgs[0].Status)
	require.Equal(t, []byte("hello"), msgs[0].Plaintext)
}

func TestHistory_KeyRequiredPlaceholder(t *testing.T) {
	// Shared-scheme token but no stored key: rendered as key-required, the
	// pass does not fail.
	token := crypto.PrefixShared + "00ff"
	svc := messagesvc.New(newMemKeys(), &fakeLedger{entries: []domain.LedgerEntry{entryFor(t, "alice", token)}}, 0, nil)

	msgs, err := svc.History(context.Background(), "c1", "ciph:bb02", "alice", nil)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, domain.DecryptKeyRequired, msgs[0].Status)
	require.Nil(t, msgs[0].Plaintext)
}

func TestHistory_ForeignCiphertextCannotCrashView(t *testing.T) {
	keys := newMemKeys()
	require.NoError(t, keys.Put(domain.ConversationKey{ConversationID: "c1"}))

	entries := []domain.LedgerEntry{
		entryFor(t, "alice", crypto.PrefixShared+"deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"),
		entryFor(t, "alice", "unknown:scheme"),
	}
	svc := messagesvc.New(keys, &fakeLedger{entries: entries}, 0, nil)

	msgs, err := svc.History(context.Background(), "c1", "ciph:bb02", "alice", nil)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		require.Equal(t, domain.DecryptFailed, m.Status)
	}
}

func TestHistory_EphemeralScheme(t *testing.T) {
	identity, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	token, err := crypto.EncryptEphemeral(identity.PubKey(), []byte("pre-handshake"))
	require.NoError(t, err)

	fl := &fakeLedger{entries: []domain.LedgerEntry{entryFor(t, "alice", token)}}
	svc := messagesvc.New(newMemKeys(), fl, 0, nil)

	// Without the identity loaded the message renders as key-required.
	msgs, err := svc.History(context.Background(), "c1", "ciph:bb02", "alice", nil)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, domain.DecryptKeyRequired, msgs[0].Status)

	// With it, the plaintext comes back.
	msgs, err = svc.History(context.Background(), "c1", "ciph:bb02", "alice", identity)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, domain.DecryptOK, msgs[0].Status)
	require.Equal(t, []byte("pre-handshake"), msgs[0].Plaintext)
}

func TestHistory_TransportFailureDegrades(t *testing.T) {
	fl := &fakeLedger{err: context.DeadlineExceeded}
	svc := messagesvc.New(newMemKeys(), fl, 0, nil)

	msgs, err := svc.History(context.Background(), "c1", "ciph:bb02", "alice", nil)
	require.NoError(t, err)
	require.Empty(t, msgs)
}
