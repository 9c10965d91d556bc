package cli

import (
	"fmt"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/cobra"
	"github.com/taurusgroup/paillier/pkg/paillier"
)

func newSignCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [message]",
		Short: "Sign a message, printing \"s1,s2\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.timed(time.Now())
			pk, err := publicKeyFromFlags(cmd)
			if err != nil {
				return err
			}
			sk, err := privateKeyFromFlags(cmd)
			if err != nil {
				return err
			}
			sig, err := sk.SignWith(pk, a.cfg.Digest, []byte(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sig.String())
			return nil
		},
	}
	addPublicFlag(cmd)
	addPrivateFlag(cmd)
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [message] [signature]",
		Short: "Verify a signature, printing true or false",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.timed(time.Now())
			pk, err := publicKeyFromFlags(cmd)
			if err != nil {
				return err
			}
			sig, err := paillier.ParseSignature(args[1])
			if err != nil {
				return errorsmod.Wrap(err, "signature")
			}
			ok := pk.VerifySignatureWith(a.cfg.Digest, []byte(args[0]), sig)
			a.log.Debug().Bool("valid", ok).Msg("verified signature")
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
	addPublicFlag(cmd)
	return cmd
}
