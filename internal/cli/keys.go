package cli

import (
	"crypto/rand"
	"fmt"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/cobra"
	"github.com/taurusgroup/paillier/pkg/errkind"
	"github.com/taurusgroup/paillier/pkg/paillier"
)

func addPublicFlag(cmd *cobra.Command) {
	cmd.Flags().String(FlagPublic, "", "public key, the decimal modulus N")
	_ = cmd.MarkFlagRequired(FlagPublic)
}

func addPrivateFlag(cmd *cobra.Command) {
	cmd.Flags().String(FlagPrivate, "", "private key, formatted as \"lambda,mu\"")
	_ = cmd.MarkFlagRequired(FlagPrivate)
}

func publicKeyFromFlags(cmd *cobra.Command) (*paillier.PublicKey, error) {
	s, err := cmd.Flags().GetString(FlagPublic)
	if err != nil {
		return nil, err
	}
	pk, err := paillier.ParsePublicKey(s)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "--%s", FlagPublic)
	}
	return pk, nil
}

func privateKeyFromFlags(cmd *cobra.Command) (*paillier.PrivateKey, error) {
	s, err := cmd.Flags().GetString(FlagPrivate)
	if err != nil {
		return nil, err
	}
	sk, err := paillier.ParsePrivateKey(s)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "--%s", FlagPrivate)
	}
	return sk, nil
}

func newKeygenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair, printing the public key then the private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.timed(time.Now())
			if a.cfg.Bits%2 != 0 {
				return errorsmod.Wrapf(errkind.ErrInvalidParameter, "--%s must be even", FlagBits)
			}
			pl := a.pool()
			defer pl.TearDown()

			a.log.Debug().Int("bits", a.cfg.Bits).Int("workers", pl.Workers()).Msg("generating primes")
			sk, pk, err := paillier.KeyGen(rand.Reader, a.cfg.Bits, pl)
			if err != nil {
				return err
			}
			a.log.Info().Int("bits", pk.N().BitLen()).Msg("generated key pair")

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, pk.String())
			fmt.Fprintln(out, sk.String())
			return nil
		},
	}
}
