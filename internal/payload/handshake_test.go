package payload_test

import (
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ciphmsg/internal/payload"
)

func sample() payload.Handshake {
	return payload.Handshake{
		Alias:           "alice",
		Timestamp:       1700000000,
		ConversationID:  "c1",
		Version:         "1",
		Recipient:       "ciph:bb02",
		SendToRecipient: true,
		IsResponse:      false,
	}
}

func TestHandshake_BuildParse_Canonical(t *testing.T) {
	raw, err := payload.BuildHandshake(sample())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), "ciph_msg:"))

	got := payload.ParseHandshake(raw)
	require.NotNil(t, got)
	require.Equal(t, sample(), *got)
}

func TestParseHandshake_PlainJSON(t *testing.T) {
	raw, err := json.Marshal(sample())
	require.NoError(t, err)

	got := payload.ParseHandshake(raw)
	require.NotNil(t, got)
	require.Equal(t, sample(), *got)
}

func TestParseHandshake_HexWithoutPrefix(t *testing.T) {
	raw, err := json.Marshal(sample())
	require.NoError(t, err)

	got := payload.ParseHandshake([]byte(hex.EncodeToString(raw)))
	require.NotNil(t, got)
	require.Equal(t, sample(), *got)
}

func TestParseHandshake_DoubleHex(t *testing.T) {
	// Some indexer passthroughs hex-encode the already-encoded payload.
	once, err := payload.BuildHandshake(sample())
	require.NoError(t, err)
	twice := []byte(hex.EncodeToString(once))

	got := payload.ParseHandshake(twice)
	require.NotNil(t, got)
	require.Equal(t, sample(), *got)
}

func TestParseHandshake_LegacyColonMatchesCanonical(t *testing.T) {
	want := sample()
	legacy := strings.Join([]string{
		"ciph_msg", "1", "handshake", want.ConversationID, want.Recipient,
		want.Alias, strconv.FormatInt(want.Timestamp, 36),
	}, ":")

	got := payload.ParseHandshake([]byte(legacy))
	require.NotNil(t, got)
	require.Equal(t, want, *got, "legacy and canonical encodings of one handshake must decode identically")
}

func TestParseHandshake_LegacyResponseSuffix(t *testing.T) {
	got := payload.ParseHandshake([]byte("ciph_msg:1:handshake_r:c1:recipient1:bob:s5m00"))
	require.NotNil(t, got)
	require.True(t, got.IsResponse)
	require.Equal(t, "c1", got.ConversationID)
	require.Equal(t, "recipient1", got.Recipient)
	require.Equal(t, "bob", got.Alias)
}

func TestParseHandshake_LegacyHexEncoded(t *testing.T) {
	legacy := "ciph_msg:1:handshake:c1:recipient1:bob:s5m00"
	got := payload.ParseHandshake([]byte(hex.EncodeToString([]byte(legacy))))
	require.NotNil(t, got)
	require.Equal(t, "c1", got.ConversationID)
	require.False(t, got.IsResponse)
}

func TestParseHandshake_Unparseable(t *testing.T) {
	for _, raw := range [][]byte{
		nil,
		[]byte("garbage"),
		[]byte("ciph_msg:nothex"),
		[]byte(`{"alias":"x"}`), // missing conversation id and recipient
		[]byte("ciph_msg:1:comm:alias:deadbeef"),
		{0x00, 0x01, 0x02},
	} {
		require.Nil(t, payload.ParseHandshake(raw), "payload %q", raw)
	}
}

func TestBuildHandshake_SizeCeiling(t *testing.T) {
	h := sample()
	h.Alias = strings.Repeat("x", payload.MaxHandshakeBytes)
	_, err := payload.BuildHandshake(h)
	require.ErrorIs(t, err, payload.ErrPayloadTooLarge)
}
