package conversation

import "ciphmsg/internal/domain"

// syntheticIDLen is how much of an entry id is used as the conversation id
// when the handshake payload carries none.
const syntheticIDLen = 16

// Reconcile folds the handshake entries sent and received by self into the
// canonical map of conversations. Both input lists are unordered and may
// contain duplicates; malformed entries are expected to have been skipped by
// the caller during decoding.
//
// The fold runs in five passes. A non-response handshake always determines
// the true initiator; response handshakes only update recipient-side
// bookkeeping and never override an initiator established by a non-response.
func Reconcile(self string, sent, received []domain.Handshake) map[string]*domain.Conversation {
	out := make(map[string]*domain.Conversation)
	provisional := make(map[string]bool)

	// Pass 1: sent non-responses establish conversations we initiated.
	for _, h := range sent {
		if h.IsResponse {
			continue
		}
		id := conversationID(h)
		if id == "" {
			continue
		}
		// Self-addressed relay quirk: the received pass will pick this
		// conversation up with the correct parties.
		if h.Recipient == self {
			continue
		}
		c, ok := out[id]
		if !ok {
			out[id] = &domain.Conversation{
				ID:             id,
				Initiator:      self,
				Recipient:      h.Recipient,
				Status:         domain.StatusPending,
				InitiatorAlias: h.Alias,
				HandshakeID:    h.EntryID,
				CreatedAt:      entryTime(h),
			}
			continue
		}
		// Duplicate initiating entries: the earliest one owns the reference.
		if t := entryTime(h); t != 0 && (c.CreatedAt == 0 || t < c.CreatedAt) {
			c.HandshakeID = h.EntryID
			c.InitiatorAlias = h.Alias
			c.CreatedAt = t
		}
	}

	// Pass 2: sent responses mean we accepted someone else's handshake.
	for _, h := range sent {
		if !h.IsResponse {
			continue
		}
		id := conversationID(h)
		if id == "" {
			continue
		}
		if c, ok := out[id]; ok {
			c.Status = domain.StatusActive
			if c.ResponseID == "" {
				c.ResponseID = h.EntryID
			}
			// A response is sent to the original initiator. If the record
			// bootstrapped with identical placeholder parties, the response
			// target is the true initiator.
			if c.Initiator == c.Recipient {
				c.Initiator = h.Recipient
				c.Recipient = self
			}
			touch(c, entryTime(h))
			continue
		}
		// The initiating entry has not been observed locally yet; keep a
		// provisional record rather than dropping the response.
		out[id] = &domain.Conversation{
			ID:         id,
			Initiator:  h.Recipient,
			Recipient:  self,
			Status:     domain.StatusActive,
			ResponseID: h.EntryID,
			CreatedAt:  entryTime(h),
		}
		provisional[id] = true
	}

	// Pass 3: received non-responses mean someone initiated with us.
	for _, h := range received {
		if h.IsResponse {
			continue
		}
		id := conversationID(h)
		if id == "" || h.Sender == self {
			continue
		}
		c, ok := out[id]
		if !ok {
			out[id] = &domain.Conversation{
				ID:             id,
				Initiator:      h.Sender,
				Recipient:      self,
				Status:         domain.StatusPending,
				InitiatorAlias: h.Alias,
				HandshakeID:    h.EntryID,
				CreatedAt:      entryTime(h),
			}
			continue
		}
		// The non-response wins the initiator over a provisional record.
		if provisional[id] {
			c.Initiator = h.Sender
			c.Recipient = self
			delete(provisional, id)
		}
		if c.InitiatorAlias == "" {
			c.InitiatorAlias = h.Alias
		}
		if c.HandshakeID == "" {
			c.HandshakeID = h.EntryID
		}
		touch(c, entryTime(h))
	}

	// Pass 4: received responses mean the peer accepted our handshake.
	for _, h := range received {
		if !h.IsResponse {
			continue
		}
		id := conversationID(h)
		if id == "" {
			continue
		}
		if c, ok := out[id]; ok {
			c.Status = domain.StatusActive
			if c.ResponseID == "" {
				c.ResponseID = h.EntryID
			}
			touch(c, entryTime(h))
			continue
		}
		// Response observed before its initial handshake: the response is
		// addressed to the true initiator, so record it provisionally.
		out[id] = &domain.Conversation{
			ID:         id,
			Initiator:  h.Recipient,
			Recipient:  h.Sender,
			Status:     domain.StatusActive,
			ResponseID: h.EntryID,
			CreatedAt:  entryTime(h),
		}
		provisional[id] = true
	}

	// Pass 5: conversation-id variance between passes can leave a sent
	// response unapplied; re-check conversations still missing one.
	for _, h := range sent {
		if !h.IsResponse {
			continue
		}
		id := conversationID(h)
		if id == "" {
			continue
		}
		if c, ok := out[id]; ok && c.ResponseID == "" {
			c.Status = domain.StatusActive
			c.ResponseID = h.EntryID
		}
	}

	return out
}

// conversationID resolves the grouping key for a handshake: the payload's
// conversation id when present, otherwise a prefix of the entry id.
func conversationID(h domain.Handshake) string {
	if h.ConversationID != "" {
		return h.ConversationID
	}
	if len(h.EntryID) > syntheticIDLen {
		return h.EntryID[:syntheticIDLen]
	}
	return h.EntryID
}

// entryTime picks the best known time for an entry: block time when the
// indexer supplied one, else the sender's payload timestamp.
func entryTime(h domain.Handshake) int64 {
	if h.BlockTime > 0 {
		return h.BlockTime
	}
	return h.Timestamp
}

// touch adopts t as CreatedAt when it is earlier than the current value.
func touch(c *domain.Conversation, t int64) {
	if t > 0 && (c.CreatedAt == 0 || t < c.CreatedAt) {
		c.CreatedAt = t
	}
}
