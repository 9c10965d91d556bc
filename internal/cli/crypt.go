package cli

import (
	"fmt"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/cronokirby/saferith"
	"github.com/spf13/cobra"
	"github.com/taurusgroup/paillier/pkg/paillier"
)

func parseCiphertextArg(name, s string) (*paillier.Ciphertext, error) {
	ct, err := paillier.ParseCiphertext(s)
	if err != nil {
		return nil, errorsmod.Wrap(err, name)
	}
	return ct, nil
}

func parseNatArg(name, s string) (*saferith.Nat, error) {
	x, err := paillier.ParseNat(s)
	if err != nil {
		return nil, errorsmod.Wrap(err, name)
	}
	return x, nil
}

func newEncryptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt [plaintext]",
		Short: "Encrypt a non-negative integer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.timed(time.Now())
			pk, err := publicKeyFromFlags(cmd)
			if err != nil {
				return err
			}
			m, err := parseNatArg("plaintext", args[0])
			if err != nil {
				return err
			}
			ct, err := pk.Enc(m)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ct.String())
			return nil
		},
	}
	addPublicFlag(cmd)
	return cmd
}

func newDecryptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt [ciphertext]",
		Short: "Decrypt a ciphertext",
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
			ct, err := parseCiphertextArg("ciphertext", args[0])
			if err != nil {
				return err
			}
			m, err := sk.Dec(pk, ct)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.Big().String())
			return nil
		},
	}
	addPublicFlag(cmd)
	addPrivateFlag(cmd)
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [ciphertext] [ciphertext]",
		Short: "Homomorphically add two ciphertexts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.timed(time.Now())
			pk, err := publicKeyFromFlags(cmd)
			if err != nil {
				return err
			}
			ct1, err := parseCiphertextArg("first ciphertext", args[0])
			if err != nil {
				return err
			}
			ct2, err := parseCiphertextArg("second ciphertext", args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pk.Add(ct1, ct2).String())
			return nil
		},
	}
	addPublicFlag(cmd)
	return cmd
}

// newConstCmd builds the commands combining a ciphertext with a plaintext constant.
func newConstCmd(a *app, use, short string, op func(*paillier.PublicKey, *paillier.Ciphertext, *saferith.Nat) *paillier.Ciphertext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [ciphertext] [constant]",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.timed(time.Now())
			pk, err := publicKeyFromFlags(cmd)
			if err != nil {
				return err
			}
			ct, err := parseCiphertextArg("ciphertext", args[0])
			if err != nil {
				return err
			}
			k, err := parseNatArg("constant", args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), op(pk, ct, k).String())
			return nil
		},
	}
	addPublicFlag(cmd)
	return cmd
}

func newAddConstCmd(a *app) *cobra.Command {
	return newConstCmd(a, "add-const", "Homomorphically add a constant to a ciphertext", (*paillier.PublicKey).AddConst)
}

func newMulConstCmd(a *app) *cobra.Command {
	return newConstCmd(a, "mul-const", "Homomorphically multiply a ciphertext by a constant", (*paillier.PublicKey).MulConst)
}
