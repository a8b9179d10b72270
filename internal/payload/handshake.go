package payload

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"ciphmsg/internal/codec"
)

const (
	// Prefix is the textual namespace of private-messaging payloads.
	Prefix = "ciph_msg"
	// Version is the current protocol version carried in every payload.
	Version = "1"

	// MaxHandshakeBytes caps an encoded handshake payload. Oversized
	// payloads are rejected locally, before they can reach the ledger and
	// fail indexing.
	MaxHandshakeBytes = 2048

	legacyHandshake         = "handshake"
	legacyHandshakeResponse = "handshake_r"
)

// ErrPayloadTooLarge is returned when an encoded payload exceeds its class
// ceiling.
var ErrPayloadTooLarge = errors.New("payload: exceeds size ceiling")

// Handshake is the logical content of a handshake payload, independent of
// which wire encoding carried it.
type Handshake struct {
	Alias           string `json:"alias"`
	Timestamp       int64  `json:"timestamp"`
	ConversationID  string `json:"conversation_id"`
	Version         string `json:"version"`
	Recipient       string `json:"recipient_address"`
	SendToRecipient bool   `json:"send_to_recipient"`
	IsResponse      bool   `json:"is_response"`
}

// BuildHandshake encodes h in the canonical current form: the JSON object,
// hex-encoded, behind the textual prefix.
func BuildHandshake(h Handshake) ([]byte, error) {
	if h.Version == "" {
		h.Version = Version
	}
	raw, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	out := []byte(Prefix + ":" + codec.Hex(raw))
	if len(out) > MaxHandshakeBytes {
		return nil, ErrPayloadTooLarge
	}
	return out, nil
}

// handshakeDecoder attempts one wire encoding; nil means "not this one".
type handshakeDecoder func([]byte) *Handshake

// handshakeDecoders is the fixed priority order. Every branch must be tried
// before an entry is declared unparseable.
var handshakeDecoders = []handshakeDecoder{
	decodePlainJSON,
	decodeHexJSON,
	decodeDoubleHexJSON,
	decodeLegacyColon,
}

// ParseHandshake decodes a raw handshake payload, accepting the canonical
// hex-JSON form, already-decoded JSON text, the double-hex-encoded variant
// some indexer passthroughs produce, and the legacy colon-delimited compact
// form. Returns nil if no known encoding matches.
func ParseHandshake(raw []byte) *Handshake {
	if len(raw) == 0 {
		return nil
	}
	for _, dec := range handshakeDecoders {
		if h := dec(raw); h != nil {
			return h
		}
	}
	return nil
}

// decodePlainJSON handles payloads the indexer already decoded to JSON text.
func decodePlainJSON(raw []byte) *Handshake {
	if !codec.IsText(raw) {
		return nil
	}
	return parseHandshakeJSON(raw)
}

// decodeHexJSON handles the canonical form: optional "ciph_msg:" prefix,
// then hex-encoded JSON.
func decodeHexJSON(raw []byte) *Handshake {
	b, ok := codec.FromHex(stripPrefix(string(raw)))
	if !ok {
		return nil
	}
	return parseHandshakeJSON(b)
}

// decodeDoubleHexJSON handles the double-encoding observed from some indexer
// passthroughs: hex of (optionally prefixed) hex of JSON.
func decodeDoubleHexJSON(raw []byte) *Handshake {
	b, ok := codec.FromHex(stripPrefix(string(raw)))
	if !ok {
		return nil
	}
	b2, ok := codec.FromHex(stripPrefix(string(b)))
	if !ok {
		return nil
	}
	return parseHandshakeJSON(b2)
}

// decodeLegacyColon parses the historical compact form, directly or behind
// one hex layer:
//
//	ciph_msg:1:handshake[_r]:convId:recipient:alias:timestampRadix36
func decodeLegacyColon(raw []byte) *Handshake {
	if h := parseLegacyColon(string(raw)); h != nil {
		return h
	}
	if b, ok := codec.FromHex(string(raw)); ok {
		return parseLegacyColon(string(b))
	}
	return nil
}

func parseLegacyColon(s string) *Handshake {
	parts := strings.SplitN(s, ":", 7)
	if len(parts) != 7 || parts[0] != Prefix {
		return nil
	}
	kind := parts[2]
	if kind != legacyHandshake && kind != legacyHandshakeResponse {
		return nil
	}
	ts, err := strconv.ParseInt(parts[6], 36, 64)
	if err != nil {
		return nil
	}
	return &Handshake{
		Alias:           parts[5],
		Timestamp:       ts,
		ConversationID:  parts[3],
		Version:         parts[1],
		Recipient:       parts[4],
		SendToRecipient: true,
		IsResponse:      kind == legacyHandshakeResponse,
	}
}

// parseHandshakeJSON unmarshals b when it looks like a handshake object.
// A decoded handshake without a conversation id or recipient is rejected so
// unrelated JSON on the ledger does not masquerade as a handshake.
func parseHandshakeJSON(b []byte) *Handshake {
	trimmed := strings.TrimSpace(string(b))
	if !strings.HasPrefix(trimmed, "{") {
		return nil
	}
	var h Handshake
	if err := json.Unmarshal([]byte(trimmed), &h); err != nil {
		return nil
	}
	if h.ConversationID == "" || h.Recipient == "" {
		return nil
	}
	return &h
}

// stripPrefix drops a short textual wrapper ("ciph_msg:") in front of a hex
// body, when present.
func stripPrefix(s string) string {
	if rest, ok := strings.CutPrefix(s, Prefix+":"); ok {
		return rest
	}
	return s
}
