package payload

import (
	"crypto/sha256"
	"strings"

	"ciphmsg/internal/codec"
)

const (
	// BroadcastPrefix is the namespace for public, non-private content such
	// as Q&A posts.
	BroadcastPrefix = "ciph_bcast"

	// MaxBroadcastBytes caps an encoded broadcast payload.
	MaxBroadcastBytes = 4096

	// BroadcastBodyLimit is the stored-body truncation length. The body is
	// truncated before hashing so the indexed hash always matches the
	// stored content.
	BroadcastBodyLimit = 1000

	// BroadcastPost and BroadcastReply are the supported broadcast kinds.
	BroadcastPost  = "post"
	BroadcastReply = "reply"
)

// Broadcast is a decoded public broadcast payload.
type Broadcast struct {
	Kind        string
	ID          string
	ContentHash string // hex sha256 of the truncated body
	Content     string // truncated body as stored
}

// BuildBroadcast encodes a public post:
//
//	ciph_bcast:1:{kind}:{id}:{hashHex}:{truncated body}
//
// Content is truncated to BroadcastBodyLimit bytes first, and the hash is
// computed over the truncated body. Hashing before truncating would make
// verification fail permanently for long bodies.
func BuildBroadcast(kind, id, content string) ([]byte, error) {
	body := TruncateBody(content)
	sum := sha256.Sum256([]byte(body))
	out := []byte(BroadcastPrefix + ":" + Version + ":" + kind + ":" + id + ":" + codec.Hex(sum[:]) + ":" + body)
	if len(out) > MaxBroadcastBytes {
		return nil, ErrPayloadTooLarge
	}
	return out, nil
}

// ParseBroadcast decodes a broadcast payload, or nil if raw is not one.
func ParseBroadcast(raw []byte) *Broadcast {
	parts := strings.SplitN(string(raw), ":", 6)
	if len(parts) != 6 || parts[0] != BroadcastPrefix {
		return nil
	}
	if parts[2] == "" || parts[4] == "" {
		return nil
	}
	return &Broadcast{Kind: parts[2], ID: parts[3], ContentHash: parts[4], Content: parts[5]}
}

// VerifyHash reports whether the stored hash matches the stored body.
func (b *Broadcast) VerifyHash() bool {
	sum := sha256.Sum256([]byte(b.Content))
	return codec.Hex(sum[:]) == b.ContentHash
}

// TruncateBody clips content to the stored-body limit. Content already
// within the limit is returned unchanged.
func TruncateBody(content string) string {
	if len(content) <= BroadcastBodyLimit {
		return content
	}
	return content[:BroadcastBodyLimit]
}
