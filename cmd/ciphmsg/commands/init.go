package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ciphmsg/internal/codec"
)

// init: derive the local identity keypair from a wallet signature.
func initCmd() *cobra.Command {
	var signatureHex string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Derive and store the local identity from a wallet signature",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if address == "" {
				return fmt.Errorf("--address required")
			}
			sig, ok := codec.FromHex(signatureHex)
			if !ok {
				return fmt.Errorf("--signature must be hex")
			}

			idAddr, err := appCtx.Identity.Derive(passphrase, address, sig)
			if err != nil {
				return err
			}
			fp, err := appCtx.Identity.Fingerprint(passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Identity created.\nAddress: %s\nFingerprint: %s\n", idAddr, fp)
			return nil
		},
	}
	cmd.Flags().StringVar(&signatureHex, "signature", "", "hex wallet signature seeding the identity")
	_ = cmd.MarkFlagRequired("signature")
	return cmd
}
