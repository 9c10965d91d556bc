package cli

import (
	"fmt"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/cronokirby/saferith"
	"github.com/spf13/cobra"
	zkmember "github.com/taurusgroup/paillier/pkg/zk/member"
)

// parseCandidates reads a comma separated list of integers.
func parseCandidates(s string) ([]*saferith.Nat, error) {
	parts := strings.Split(s, ",")
	candidates := make([]*saferith.Nat, 0, len(parts))
	for _, part := range parts {
		x, err := parseNatArg("candidates", part)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, x)
	}
	return candidates, nil
}

func newProveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prove [plaintext] [candidates]",
		Short: "Encrypt a plaintext and prove it is one of a comma separated list of candidates",
		Long: "Encrypt a plaintext and prove it is one of a comma separated list of candidates.\n" +
			"Prints the ciphertext, then the proof.",
		Args: cobra.ExactArgs(2),
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
			candidates, err := parseCandidates(args[1])
			if err != nil {
				return err
			}
			pl := a.pool()
			defer pl.TearDown()

			zkp, err := zkmember.NewWithPool(pk, m, candidates, pl)
			if err != nil {
				return err
			}
			a.log.Debug().Int("candidates", len(candidates)).Msg("generated proof")
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, zkp.Ciphertext.String())
			fmt.Fprintln(out, zkp.Commitment.String())
			return nil
		},
	}
	addPublicFlag(cmd)
	return cmd
}

func newVerifyProofCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-proof [ciphertext] [candidates] [proof]",
		Short: "Verify a set membership proof, printing true or false",
		Args:  cobra.ExactArgs(3),
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
			candidates, err := parseCandidates(args[1])
			if err != nil {
				return err
			}
			proof, err := zkmember.ParseProof(args[2])
			if err != nil {
				return errorsmod.Wrap(err, "proof")
			}
			pl := a.pool()
			defer pl.TearDown()

			ok := zkmember.VerifyWithPool(pk, ct, candidates, proof, pl)
			a.log.Debug().Bool("valid", ok).Int("candidates", len(candidates)).Msg("verified proof")
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
	addPublicFlag(cmd)
	return cmd
}
