package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configOutput string
	configForce  bool
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Generate and inspect fydkg configuration files.

Configuration files use YAML and can set a default for every flag.
Command-line flags override config file values.

Environment variables can also be used with the FYDKG_ prefix.
For example: FYDKG_CURVE=secp256k1 or FYDKG_RUN_THRESHOLD=2`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a sample configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run:   runConfigShow,
}

func init() {
	configInitCmd.Flags().StringVarP(&configOutput, "output", "o", "", "output path (default: $HOME/.fydkg/config.yaml)")
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

const sampleConfig = `# fydkg configuration file
# Command-line flags override these values

# Group: bls12381, babyjubjub, secp256k1, ed25519
curve: bls12381

# Wire codec: cbor, msgpack, json
codec: cbor

# Phase-1 commitment hash: sha256, blake2b, blake3
hash: sha256

# Logging
log_format: text
verbose: false

run:
  threshold: 1
  parties: 3
  paillier_bits: 2048
  session_id: ""        # derived from the time if empty
  timeout: 5m
  metrics: false
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	outputPath := configOutput
	if outputPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		outputPath = filepath.Join(homeDir, ".fydkg", "config.yaml")
	}

	if _, err := os.Stat(outputPath); err == nil && !configForce {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", outputPath)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(sampleConfig), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", outputPath)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current Configuration:")
	fmt.Fprintln(out, "======================")

	keys := viper.AllKeys()
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(out, "%s: %v\n", key, viper.Get(key))
	}

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "\nLoaded from: %s\n", viper.ConfigFileUsed())
	}
}
