package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/fydkg/bjj"
	"github.com/f3rmion/fydkg/bls12381"
	"github.com/f3rmion/fydkg/commitment"
	"github.com/f3rmion/fydkg/ed25519"
	"github.com/f3rmion/fydkg/group"
	"github.com/f3rmion/fydkg/secp256k1"
)

// Version information - set via ldflags at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var cfgFile string

// Curve names accepted by --curve.
const (
	CurveBLS12381   = "bls12381"
	CurveBabyJubjub = "babyjubjub"
	CurveSecp256k1  = "secp256k1"
	CurveEd25519    = "ed25519"
)

// ValidCurves returns the supported curve names.
func ValidCurves() []string {
	return []string{CurveBLS12381, CurveBabyJubjub, CurveSecp256k1, CurveEd25519}
}

func groupByName(name string) (group.Group, error) {
	switch strings.ToLower(name) {
	case CurveBLS12381, "":
		return bls12381.New(), nil
	case CurveBabyJubjub, "bjj":
		return &bjj.BJJ{}, nil
	case CurveSecp256k1:
		return secp256k1.New(), nil
	case CurveEd25519:
		return ed25519.New(), nil
	default:
		return nil, fmt.Errorf("unsupported curve %q (valid: %s)", name, strings.Join(ValidCurves(), ", "))
	}
}

func hasherByName(name string) (commitment.Hasher, error) {
	return commitment.HasherByName(strings.ToLower(name))
}

func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q (valid: text, json)", format)
	}
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fydkg",
	Short: "Threshold distributed key generation",
	Long: `fydkg runs verifiable distributed key generation for a (t, n) threshold
scheme: n parties derive a joint public key whose secret any t+1 of them
can use together, while t or fewer learn nothing about it.

Use 'fydkg run' to simulate a complete run in one process.
Use 'fydkg config show' to inspect the effective configuration.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME/.fydkg")
			viper.AddConfigPath(".")
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}

		// A missing default config file is fine; a missing --config is not.
		if err := viper.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
				return fmt.Errorf("failed to read config: %w", err)
			}
		}

		viper.SetEnvPrefix("FYDKG")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		viper.AutomaticEnv()
		return nil
	},
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "fydkg version %s\n", Version)
		fmt.Fprintf(out, "Git commit: %s\n", GitCommit)
		fmt.Fprintf(out, "Build date: %s\n", BuildTime)
		fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.fydkg/config.yaml)")
	flags.String("curve", CurveBLS12381, "group to generate the key in ("+strings.Join(ValidCurves(), ", ")+")")
	flags.String("codec", "cbor", "wire codec (cbor, msgpack, json)")
	flags.String("hash", "sha256", "commitment hash (sha256, blake2b, blake3)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.BoolP("verbose", "v", false, "debug logging")

	for _, name := range []string{"curve", "codec", "hash", "log-format", "verbose"} {
		key := strings.ReplaceAll(name, "-", "_")
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", name, err))
		}
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}
