package payload_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ciphmsg/internal/payload"
)

func TestContextual_BuildParse(t *testing.T) {
	// The cipher token carries its own colon; it must survive intact.
	raw, err := payload.BuildContextual("alice", "sym:deadbeef")
	require.NoError(t, err)
	require.Equal(t, "ciph_msg:1:comm:alice:sym:deadbeef", string(raw))

	got := payload.ParseContextual(raw)
	require.NotNil(t, got)
	require.Equal(t, "alice", got.Alias)
	require.Equal(t, "sym:deadbeef", got.Cipher)
}

func TestParseContextual_HexEncodedWhole(t *testing.T) {
	raw, err := payload.BuildContextual("alice", "ecies:00ff")
	require.NoError(t, err)

	got := payload.ParseContextual([]byte(hex.EncodeToString(raw)))
	require.NotNil(t, got)
	require.Equal(t, "ecies:00ff", got.Cipher)
}

func TestParseContextual_Rejects(t *testing.T) {
	for _, raw := range [][]byte{
		nil,
		[]byte("ciph_msg:1:handshake:c1:r:a:0"),
		[]byte("other:1:comm:alice:sym:00"),
		[]byte("ciph_msg:1:comm::sym:00"), // empty alias
		[]byte("ciph_msg:1:comm:alice:"),  // empty token
	} {
		require.Nil(t, payload.ParseContextual(raw), "payload %q", raw)
	}
}

func TestBuildContextual_SizeCeiling(t *testing.T) {
	_, err := payload.BuildContextual("alice", "sym:"+strings.Repeat("ab", payload.MaxMessageBytes))
	require.ErrorIs(t, err, payload.ErrPayloadTooLarge)
}
