package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ciphmsg/internal/payload"
)

// post <content>: build a public broadcast payload (Q&A post or reply).
func postCmd() *cobra.Command {
	var replyTo string
	cmd := &cobra.Command{
		Use:   "post <content>",
		Short: "Build a public broadcast payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id := payload.BroadcastPost, uuid.NewString()
			if replyTo != "" {
				kind, id = payload.BroadcastReply, replyTo
			}
			raw, err := payload.BuildBroadcast(kind, id, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("payload: %s\n", raw)
			return nil
		},
	}
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "post id this content replies to")
	return cmd
}
