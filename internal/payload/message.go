package payload

import (
	"strings"

	"ciphmsg/internal/codec"
)

const (
	// MaxMessageBytes caps an encoded contextual-message payload.
	MaxMessageBytes = 2048

	commKind = "comm"
)

// ContextualMessage is a decoded contextual-message payload. Alias is the
// ledger-visible routing token negotiated during the handshake; Cipher is the
// scheme-tagged ciphertext token, untouched.
type ContextualMessage struct {
	Alias  string
	Cipher string
}

// BuildContextual encodes a contextual message:
//
//	ciph_msg:1:comm:{alias}:{cipherToken}
func BuildContextual(alias, cipherToken string) ([]byte, error) {
	out := []byte(Prefix + ":" + Version + ":" + commKind + ":" + alias + ":" + cipherToken)
	if len(out) > MaxMessageBytes {
		return nil, ErrPayloadTooLarge
	}
	return out, nil
}

// ParseContextual decodes a contextual-message payload, tolerating a whole
// payload that arrives hex-encoded. Returns nil for anything else.
func ParseContextual(raw []byte) *ContextualMessage {
	if m := parseContextualText(string(raw)); m != nil {
		return m
	}
	if b, ok := codec.FromHex(string(raw)); ok {
		return parseContextualText(string(b))
	}
	return nil
}

func parseContextualText(s string) *ContextualMessage {
	// The cipher token contains its own colon, so split to exactly five
	// fields and keep the tail intact.
	parts := strings.SplitN(s, ":", 5)
	if len(parts) != 5 || parts[0] != Prefix || parts[2] != commKind {
		return nil
	}
	if parts[3] == "" || parts[4] == "" {
		return nil
	}
	return &ContextualMessage{Alias: parts[3], Cipher: parts[4]}
}
