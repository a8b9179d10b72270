package domain

import "context"

// LedgerClient is how we talk to the external indexing service. It is a pure
// network boundary: no local state, and the bulk fetch methods degrade to
// empty result sets on transport failure so reconciliation can run on
// whatever subset succeeded.
type LedgerClient interface {
	HandshakesBySender(ctx context.Context, address string, limit int) ([]LedgerEntry, error)
	HandshakesByReceiver(ctx context.Context, address string, limit int) ([]LedgerEntry, error)
	ContextualMessagesBySender(ctx context.Context, address, alias string, limit int) ([]LedgerEntry, error)

	// Handshakes issues the by-sender and by-receiver queries concurrently,
	// each under its own timeout, and returns whatever subset succeeded.
	Handshakes(ctx context.Context, address string, limit int) (sent, received []LedgerEntry)
}

// KeyStore persists conversation keys for one local wallet identity. An
// empty store is a valid store, not an error; contents survive process
// restart.
type KeyStore interface {
	Get(conversationID string) (ConversationKey, bool, error)
	Put(key ConversationKey) error
	Has(conversationID string) (bool, error)
	Clear() error
	Close() error
}
