// Package main provides the svstats command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "svstats",
		Short:   "Descriptive statistics for structural variants in VCF files",
		Long:    "svstats tallies structural variants by type, size, genotype and quality,\nand reports counts, cross tabs and Het/Hom ratios.",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig loads ~/.svstats.yaml if present and sets defaults for the
// quality bucket scale.
func initConfig() error {
	viper.SetDefault("qual.min", 0.0)
	viper.SetDefault("qual.max", 100.0)
	viper.SetDefault("qual.step", 10.0)

	home, err := os.UserHomeDir()
	if err != nil {
		return nil // no home dir, defaults only
	}
	viper.SetConfigName(".svstats")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}
