package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// whoami: print the stored identity's address and fingerprint.
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			addr, err := appCtx.Identity.Address(passphrase)
			if err != nil {
				return err
			}
			fp, err := appCtx.Identity.Fingerprint(passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Address: %s\nFingerprint: %s\n", addr, fp)
			return nil
		},
	}
}
