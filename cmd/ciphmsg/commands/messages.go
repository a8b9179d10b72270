package commands

import (
	"fmt"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/spf13/cobra"

	"ciphmsg/internal/domain"
)

// messages <conversation> <alias> <peer>: fetch and decrypt the peer's
// messages in a conversation.
func messagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages <conversation> <alias> <peer>",
		Short: "Fetch and decrypt a conversation's messages",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The identity is optional here: without it, ephemeral-scheme
			// messages render as "key required" instead of failing.
			var identity *secp256k1.PrivateKey
			if passphrase != "" {
				var err error
				if identity, err = appCtx.Identity.Load(passphrase); err != nil {
					return err
				}
			}

			msgs, err := appCtx.Messages.History(cmd.Context(), args[0], args[2], args[1], identity)
			if err != nil {
				return err
			}
			for _, m := range msgs {
				fmt.Printf("[%s] %s %s\n", time.Unix(m.BlockTime, 0).Format(time.RFC3339), m.Sender, render(m))
			}
			return nil
		},
	}
}

func render(m domain.DecryptedMessage) string {
	switch m.Status {
	case domain.DecryptOK:
		return string(m.Plaintext)
	case domain.DecryptKeyRequired:
		return "<key required>"
	default:
		return "<cannot decrypt>"
	}
}
