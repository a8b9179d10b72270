package domain

// ConversationStatus tracks whether a handshake has been answered.
type ConversationStatus string

const (
	// StatusPending means only the initiating handshake has been observed.
	StatusPending ConversationStatus = "pending"
	// StatusActive means both the handshake and its response are on the ledger.
	StatusActive ConversationStatus = "active"
)

// Conversation is the reconstructed relationship between two addresses.
// It is a derived view: every reconciliation pass rebuilds it from scratch
// out of the raw ledger entries, nothing here is persisted.
type Conversation struct {
	ID             string
	Initiator      string
	Recipient      string
	Status         ConversationStatus
	InitiatorAlias string
	HandshakeID    string // entry id of the initiating handshake
	ResponseID     string // entry id of the accepting handshake, set once active
	CreatedAt      int64  // earliest known entry time, unix seconds
}

// LedgerEntry is one payload-bearing transaction as returned by the indexer.
// Immutable once fetched.
type LedgerEntry struct {
	EntryID    string `json:"entryId"`
	Sender     string `json:"sender"`
	Receiver   string `json:"receiver"`
	BlockTime  int64  `json:"blockTime"`
	RawPayload string `json:"rawPayload"` // hex
}

// Handshake is a decoded handshake entry. Sender, Receiver and BlockTime come
// from the ledger entry; the rest comes from the payload. Recipient is the
// logical destination embedded in the payload and is authoritative over the
// ledger-level Receiver, which can diverge when entries are relayed.
type Handshake struct {
	EntryID   string
	Sender    string
	Receiver  string
	BlockTime int64

	ConversationID string
	Recipient      string
	Alias          string
	Timestamp      int64
	IsResponse     bool
}

// ContextualMessage is a decoded message entry for an established
// conversation. Cipher is the scheme-tagged ciphertext token, still
// wire-encoded; the alias is the only linkage back to a conversation.
type ContextualMessage struct {
	EntryID   string
	Sender    string
	BlockTime int64
	Alias     string
	Cipher    string
}

// ConversationKey is the derived symmetric key for one conversation. A
// conversation has exactly one key for its lifetime; losing it means the
// plaintext history is gone for this device.
type ConversationKey struct {
	ConversationID string   `json:"conversation_id"`
	Key            [32]byte `json:"key"`
	CreatedAt      int64    `json:"created_at"`
	Initiator      string   `json:"initiator"`
	Recipient      string   `json:"recipient"`
}

// DecryptStatus classifies the outcome of decrypting one message. Failures
// are rendering states, not errors: one foreign or corrupt message must not
// take down a conversation view.
type DecryptStatus string

const (
	// DecryptOK means Plaintext holds the original message.
	DecryptOK DecryptStatus = "ok"
	// DecryptKeyRequired means no key for this conversation is stored locally.
	DecryptKeyRequired DecryptStatus = "key_required"
	// DecryptFailed means the ciphertext did not authenticate under any
	// available key, typically a legacy or foreign message.
	DecryptFailed DecryptStatus = "failed"
)

// DecryptedMessage is one contextual message prepared for display.
type DecryptedMessage struct {
	EntryID   string
	Sender    string
	Alias     string
	BlockTime int64
	Status    DecryptStatus
	Plaintext []byte
}
