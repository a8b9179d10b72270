package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// conversations: rebuild and print the conversation set for --address.
func conversationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conversations",
		Short: "List conversations reconstructed from the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address == "" {
				return fmt.Errorf("--address required")
			}

			convs, err := appCtx.Conversations.List(cmd.Context(), address)
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(convs))
			for id := range convs {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			for _, id := range ids {
				c := convs[id]
				fmt.Printf("%s  %-7s  %s -> %s  alias=%q\n", c.ID, c.Status, c.Initiator, c.Recipient, c.InitiatorAlias)
			}
			return nil
		},
	}
}
