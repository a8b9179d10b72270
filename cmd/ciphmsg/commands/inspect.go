package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ciphmsg/internal/crypto"
	"ciphmsg/internal/payload"
)

// inspect <payload>: classify a raw on-ledger payload and print its fields.
// Useful when debugging what a wallet actually attached to an entry.
func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <payload>",
		Short: "Decode a raw on-ledger payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := []byte(args[0])

			if h := payload.ParseHandshake(raw); h != nil {
				kind := "handshake"
				if h.IsResponse {
					kind = "handshake response"
				}
				fmt.Printf("%s\nconversation: %s\nrecipient: %s\nalias: %q\ntime: %s\n",
					kind, h.ConversationID, h.Recipient, h.Alias,
					time.Unix(h.Timestamp, 0).Format(time.RFC3339))
				return nil
			}

			if m := payload.ParseContextual(raw); m != nil {
				scheme := "shared-key"
				if strings.HasPrefix(m.Cipher, crypto.PrefixEphemeral) {
					scheme = "ephemeral-key"
				}
				fmt.Printf("message\nalias: %q\nscheme: %s\n", m.Alias, scheme)
				return nil
			}

			if b := payload.ParseBroadcast(raw); b != nil {
				fmt.Printf("broadcast %s\nid: %s\nhash ok: %t\nbody: %s\n",
					b.Kind, b.ID, b.VerifyHash(), b.Content)
				return nil
			}

			return fmt.Errorf("unrecognized payload")
		},
	}
}
