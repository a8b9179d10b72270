package conversation

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"ciphmsg/internal/codec"
	"ciphmsg/internal/conversation"
	"ciphmsg/internal/domain"
	"ciphmsg/internal/payload"
)

// Service rebuilds the conversation view for an address.
//
// Each call fetches the sent and received handshake entries from the
// indexer, decodes whatever parses, and folds the result into a fresh
// conversation map. Reconciliation passes for the same identity are
// serialized; running two at once could double-count provisional records.
type Service struct {
	ledger domain.LedgerClient
	limit  int
	log    *zap.Logger

	mu sync.Mutex
}

// New constructs a conversation service. limit caps each indexer query.
func New(ledger domain.LedgerClient, limit int, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{ledger: ledger, limit: limit, log: log}
}

// List returns the canonical conversation map for address, keyed by
// conversation id. Transport failures on either query degrade that side to
// empty; the result then under-approximates and self-heals on a later pass.
func (s *Service) List(ctx context.Context, address string) (map[string]*domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sentEntries, receivedEntries := s.ledger.Handshakes(ctx, address, s.limit)
	sent := s.decode(sentEntries)
	received := s.decode(receivedEntries)
	return conversation.Reconcile(address, sent, received), nil
}

// decode parses raw indexer entries into handshake records, skipping
// anything unparseable.
func (s *Service) decode(entries []domain.LedgerEntry) []domain.Handshake {
	out := make([]domain.Handshake, 0, len(entries))
	for _, e := range entries {
		h := DecodeHandshake(e)
		if h == nil {
			s.log.Debug("skipping unparseable handshake entry", zap.String("entry", e.EntryID))
			continue
		}
		out = append(out, *h)
	}
	return out
}

// DecodeHandshake turns one raw indexer entry into a handshake record, or
// nil when the payload matches no known encoding.
func DecodeHandshake(e domain.LedgerEntry) *domain.Handshake {
	// Some indexer passthroughs return the payload as text already.
	raw := []byte(e.RawPayload)
	if codec.IsHex(e.RawPayload) {
		raw, _ = codec.FromHex(e.RawPayload)
	}
	p := payload.ParseHandshake(raw)
	if p == nil {
		return nil
	}
	return &domain.Handshake{
		EntryID:        e.EntryID,
		Sender:         e.Sender,
		Receiver:       e.Receiver,
		BlockTime:      e.BlockTime,
		ConversationID: p.ConversationID,
		Recipient:      p.Recipient,
		Alias:          p.Alias,
		Timestamp:      p.Timestamp,
		IsResponse:     p.IsResponse,
	}
}
