package message

import (
	"context"
	"strings"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"go.uber.org/zap"

	"ciphmsg/internal/codec"
	"ciphmsg/internal/crypto"
	"ciphmsg/internal/domain"
	"ciphmsg/internal/payload"
)

// Service encrypts outgoing contextual messages and decrypts fetched ones.
//
// Outgoing messages prefer the shared-secret scheme once a conversation key
// has been established; before that, the ephemeral scheme encrypts to the
// recipient's address directly so the first messages need no prior
// interaction. Incoming tokens are routed on their scheme tag. Decryption
// never fails hard: a missing key or a bad tag becomes a typed status on the
// rendered message.
type Service struct {
	keys   domain.KeyStore
	ledger domain.LedgerClient
	limit  int
	log    *zap.Logger
}

// New constructs a message service.
func New(keys domain.KeyStore, ledger domain.LedgerClient, limit int, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{keys: keys, ledger: ledger, limit: limit, log: log}
}

// EstablishKey derives the shared conversation key from both parties'
// handshake signatures and persists it. With only one signature available it
// returns crypto.ErrSignatureMissing; callers treat that as "not yet ready"
// and retry once the counterpart's signature arrives on ledger.
func (s *Service) EstablishKey(conversationID, myAddress, peerAddress string, mySig, peerSig []byte) error {
	key, err := crypto.SharedConversationKey(conversationID, myAddress, peerAddress, mySig, peerSig)
	if err != nil {
		return err
	}
	return s.keys.Put(domain.ConversationKey{
		ConversationID: conversationID,
		Key:            key,
		CreatedAt:      time.Now().Unix(),
		Initiator:      myAddress,
		Recipient:      peerAddress,
	})
}

// Encrypt produces the on-ledger payload for one outgoing message. The
// shared-secret scheme is used when a key for the conversation is stored;
// otherwise the message is encrypted to the recipient's address with the
// ephemeral scheme.
func (s *Service) Encrypt(conversationID, alias, recipient string, plaintext []byte) ([]byte, error) {
	k, ok, err := s.keys.Get(conversationID)
	if err != nil {
		return nil, err
	}

	var token string
	if ok {
		token, err = crypto.EncryptShared(k.Key, plaintext)
	} else {
		var pub *secp256k1.PublicKey
		pub, err = crypto.PublicKeyFromAddress(recipient)
		if err != nil {
			return nil, err
		}
		token, err = crypto.EncryptEphemeral(pub, plaintext)
	}
	if err != nil {
		return nil, err
	}
	return payload.BuildContextual(alias, token)
}

// History fetches the contextual messages peer has sent under alias and
// decrypts each one for display.
func (s *Service) History(ctx context.Context, conversationID, peer, alias string, identity *secp256k1.PrivateKey) ([]domain.DecryptedMessage, error) {
	entries, err := s.ledger.ContextualMessagesBySender(ctx, peer, alias, s.limit)
	if err != nil {
		s.log.Warn("contextual-message query failed", zap.String("peer", peer), zap.Error(err))
		return nil, nil
	}

	out := make([]domain.DecryptedMessage, 0, len(entries))
	for _, e := range entries {
		m := decodeContextual(e)
		if m == nil {
			s.log.Debug("skipping unparseable message entry", zap.String("entry", e.EntryID))
			continue
		}
		dm := domain.DecryptedMessage{
			EntryID:   m.EntryID,
			Sender:    m.Sender,
			Alias:     m.Alias,
			BlockTime: m.BlockTime,
		}
		dm.Status, dm.Plaintext = s.decryptToken(conversationID, identity, m.Cipher)
		out = append(out, dm)
	}
	return out, nil
}

// decryptToken routes a ciphertext token to the key-lookup path its scheme
// tag names. The outcome is a rendering status, never a panic or an error
// that could take down the conversation view.
func (s *Service) decryptToken(conversationID string, identity *secp256k1.PrivateKey, token string) (domain.DecryptStatus, []byte) {
	switch {
	case strings.HasPrefix(token, crypto.PrefixShared):
		k, ok, err := s.keys.Get(conversationID)
		if err != nil || !ok {
			return domain.DecryptKeyRequired, nil
		}
		pt, err := crypto.DecryptShared(k.Key, token)
		if err != nil {
			return domain.DecryptFailed, nil
		}
		return domain.DecryptOK, pt

	case strings.HasPrefix(token, crypto.PrefixEphemeral):
		if identity == nil {
			return domain.DecryptKeyRequired, nil
		}
		pt, err := crypto.DecryptEphemeral(identity, token)
		if err != nil {
			return domain.DecryptFailed, nil
		}
		return domain.DecryptOK, pt

	default:
		return domain.DecryptFailed, nil
	}
}

// decodeContextual turns a raw indexer entry into a contextual message, or
// nil when the payload does not parse.
func decodeContextual(e domain.LedgerEntry) *domain.ContextualMessage {
	raw := []byte(e.RawPayload)
	if codec.IsHex(e.RawPayload) {
		raw, _ = codec.FromHex(e.RawPayload)
	}
	p := payload.ParseContextual(raw)
	if p == nil {
		return nil
	}
	return &domain.ContextualMessage{
		EntryID:   e.EntryID,
		Sender:    e.Sender,
		BlockTime: e.BlockTime,
		Alias:     p.Alias,
		Cipher:    p.Cipher,
	}
}
