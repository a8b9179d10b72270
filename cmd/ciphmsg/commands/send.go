package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// send <conversation> <alias> <recipient> <message>: encrypt a message and
// print the on-ledger payload.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <conversation> <alias> <recipient> <message>",
		Short: "Encrypt a message for a conversation",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := appCtx.Messages.Encrypt(args[0], args[1], args[2], []byte(args[3]))
			if err != nil {
				return err
			}
			fmt.Printf("payload: %s\n", raw)
			return nil
		},
	}
}
