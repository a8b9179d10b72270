package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ciphmsg/internal/payload"
)

// handshake <recipient>: build the payload proposing (or accepting) a
// conversation. Submitting the payload to the ledger is the wallet's job;
// the bytes are printed for attachment.
func handshakeCmd() *cobra.Command {
	var (
		alias        string
		conversation string
		respond      bool
	)
	cmd := &cobra.Command{
		Use:   "handshake <recipient>",
		Short: "Build a handshake payload for a recipient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if respond && conversation == "" {
				return fmt.Errorf("--conversation required with --respond")
			}
			if conversation == "" {
				conversation = uuid.NewString()
			}

			raw, err := payload.BuildHandshake(payload.Handshake{
				Alias:           alias,
				Timestamp:       time.Now().Unix(),
				ConversationID:  conversation,
				Version:         payload.Version,
				Recipient:       args[0],
				SendToRecipient: true,
				IsResponse:      respond,
			})
			if err != nil {
				return err
			}
			fmt.Printf("conversation: %s\npayload: %s\n", conversation, raw)
			return nil
		},
	}
	cmd.Flags().StringVar(&alias, "alias", "", "display label for the conversation")
	cmd.Flags().StringVar(&conversation, "conversation", "", "existing conversation id (defaults to a fresh one)")
	cmd.Flags().BoolVar(&respond, "respond", false, "accept an existing handshake instead of proposing")
	return cmd
}
