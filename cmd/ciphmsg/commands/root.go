package commands

import (
	"github.com/spf13/cobra"

	"ciphmsg/internal/app"
)

var (
	address    string
	passphrase string
	indexerURL string
	debug      bool

	appCtx *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "ciphmsg",
		Short: "Encrypted messaging over a public ledger",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Load()
			if err != nil {
				return err
			}
			if indexerURL != "" {
				cfg.IndexerURL = indexerURL
			}
			if debug {
				cfg.Debug = true
			}
			appCtx, err = app.NewWire(cfg, address)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx != nil {
				return appCtx.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&address, "address", "", "your wallet address")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the local identity")
	root.PersistentFlags().StringVar(&indexerURL, "indexer", "", "indexer base URL (overrides CIPHMSG_INDEXER_URL)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	root.AddCommand(initCmd(), whoamiCmd(), conversationsCmd(), handshakeCmd(), sendCmd(), messagesCmd(), keysCmd(), postCmd(), inspectCmd())
	return root.Execute()
}
