package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ciphmsg/internal/codec"
	"ciphmsg/internal/crypto"
	"ciphmsg/internal/domain"
)

// keys: manage the conversation keys stored for this wallet identity.
func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage stored conversation keys",
	}
	cmd.AddCommand(keysEstablishCmd(), keysExportCmd(), keysImportCmd(), keysClearCmd())
	return cmd
}

func keysEstablishCmd() *cobra.Command {
	var (
		peer       string
		mySigHex   string
		peerSigHex string
	)
	cmd := &cobra.Command{
		Use:   "establish <conversation>",
		Short: "Derive and store the shared key from both handshake signatures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if address == "" {
				return fmt.Errorf("--address required")
			}
			mySig, ok := codec.FromHex(mySigHex)
			if !ok {
				return fmt.Errorf("--my-sig must be hex")
			}
			peerSig, ok := codec.FromHex(peerSigHex)
			if !ok {
				return fmt.Errorf("--peer-sig must be hex")
			}

			err := appCtx.Messages.EstablishKey(args[0], address, peer, mySig, peerSig)
			if errors.Is(err, crypto.ErrSignatureMissing) {
				fmt.Println("not ready: waiting for the counterpart's signature")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println("key established")
			return nil
		},
	}
	cmd.Flags().StringVar(&peer, "peer", "", "the other party's address")
	cmd.Flags().StringVar(&mySigHex, "my-sig", "", "our handshake signature (hex)")
	cmd.Flags().StringVar(&peerSigHex, "peer-sig", "", "their handshake signature (hex)")
	_ = cmd.MarkFlagRequired("peer")
	return cmd
}

func keysExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <conversation>",
		Short: "Print a conversation key (base64) for transfer to another device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, ok, err := appCtx.Keys.Get(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no key stored for %s", args[0])
			}
			fmt.Println(codec.B64(k.Key[:]))
			return nil
		},
	}
}

func keysImportCmd() *cobra.Command {
	var peer string
	cmd := &cobra.Command{
		Use:   "import <conversation> <key>",
		Short: "Import a conversation key exported elsewhere",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, ok := codec.FromB64(args[1])
			if !ok || len(raw) != crypto.KeyBytes {
				return fmt.Errorf("key must be %d base64-encoded bytes", crypto.KeyBytes)
			}
			k := domain.ConversationKey{
				ConversationID: args[0],
				CreatedAt:      time.Now().Unix(),
				Initiator:      address,
				Recipient:      peer,
			}
			copy(k.Key[:], raw)
			if err := appCtx.Keys.Put(k); err != nil {
				return err
			}
			fmt.Println("key imported")
			return nil
		},
	}
	cmd.Flags().StringVar(&peer, "peer", "", "the other party's address")
	return cmd
}

func keysClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every key stored for this identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Keys.Clear(); err != nil {
				return err
			}
			fmt.Println("keys cleared")
			return nil
		},
	}
}
