// Package cli implements the paillier command line tool.
package cli

import (
	"crypto"
	"io"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/taurusgroup/paillier/internal/params"
	"github.com/taurusgroup/paillier/pkg/errkind"
	"github.com/taurusgroup/paillier/pkg/pool"
)

const (
	EnvPrefix = "PAILLIER"

	FlagBits     = "bits"
	FlagWorkers  = "workers"
	FlagLogLevel = "log-level"
	FlagDigest   = "digest"

	FlagPublic  = "public"
	FlagPrivate = "private"
)

// Config holds the runtime settings shared by every command.
type Config struct {
	Bits     int
	Workers  int
	LogLevel zerolog.Level
	Digest   crypto.Hash
}

var digestNames = map[string]crypto.Hash{
	"sha256":   crypto.SHA256,
	"sha3-256": crypto.SHA3_256,
}

// LoadConfig reads the configuration from v, which is bound to flags and PAILLIER_* environment variables.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Bits:    v.GetInt(FlagBits),
		Workers: v.GetInt(FlagWorkers),
	}
	if cfg.Bits < 2*params.MinPrimeBits {
		return cfg, errorsmod.Wrapf(errkind.ErrInvalidParameter, "--%s must be at least %d", FlagBits, 2*params.MinPrimeBits)
	}
	if cfg.Workers < 0 {
		return cfg, errorsmod.Wrapf(errkind.ErrInvalidParameter, "--%s cannot be negative", FlagWorkers)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString(FlagLogLevel)))
	if err != nil {
		return cfg, errorsmod.Wrapf(errkind.ErrInvalidParameter, "--%s: %v", FlagLogLevel, err)
	}
	cfg.LogLevel = level

	digest, ok := digestNames[strings.ToLower(v.GetString(FlagDigest))]
	if !ok {
		return cfg, errorsmod.Wrapf(errkind.ErrInvalidParameter, "--%s must be one of sha256, sha3-256", FlagDigest)
	}
	cfg.Digest = digest
	return cfg, nil
}

// app is the state shared by the subcommands of a single invocation.
type app struct {
	v   *viper.Viper
	cfg Config
	log zerolog.Logger
}

// pool returns a worker pool sized by the configuration. The caller must tear it down.
func (a *app) pool() *pool.Pool {
	return pool.NewPool(a.cfg.Workers)
}

// timed logs the duration of a command once it returns.
func (a *app) timed(start time.Time) {
	a.log.Info().Dur("elapsed", time.Since(start)).Msg("done")
}

func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
	})).Level(level).With().Timestamp().Logger()
}

func addConfigFlags(flags *pflag.FlagSet) {
	flags.Int(FlagBits, params.DefaultKeyBits, "size of the generated modulus in bits")
	flags.Int(FlagWorkers, 0, "number of workers used for prime generation and proofs, 0 uses every CPU")
	flags.String(FlagLogLevel, "info", "log level (trace, debug, info, warn, error, disabled)")
	flags.String(FlagDigest, "sha256", "message digest used by sign and verify (sha256, sha3-256)")
}

// NewRootCmd returns the paillier command with all its subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "paillier",
		Short:         "Paillier encryption, signatures and set membership proofs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := LoadConfig(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = newLogger(cmd.ErrOrStderr(), cfg.LogLevel).With().Str("command", cmd.Name()).Logger()
			return nil
		},
	}
	addConfigFlags(rootCmd.PersistentFlags())

	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd.AddCommand(
		newKeygenCmd(a),
		newEncryptCmd(a),
		newDecryptCmd(a),
		newAddCmd(a),
		newAddConstCmd(a),
		newMulConstCmd(a),
		newSignCmd(a),
		newVerifyCmd(a),
		newProveCmd(a),
		newVerifyProofCmd(a),
	)
	return rootCmd
}
