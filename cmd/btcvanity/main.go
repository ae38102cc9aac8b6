package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Amr-9/btcvanity/internal/config"
	"github.com/Amr-9/btcvanity/internal/logger"
	"github.com/Amr-9/btcvanity/pkg/generator/cpu"
)

const version = "1.0"

// rootFlags are shared by every subcommand and override the config file.
type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	batchSize  int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "btcvanity",
		Short: "Bitcoin vanity address suffix search",
		Long: `Search for Bitcoin addresses (P2PKH, P2WPKH or P2TR, mainnet or testnet)
ending in a chosen suffix. Run it as a local web service or as an
interactive terminal search.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format (json, console)")
	rootCmd.PersistentFlags().IntVar(&flags.batchSize, "batch-size", 0, "Keys tried between cancellation checks")

	rootCmd.AddCommand(newServeCmd(flags), newSearchCmd(flags))
	return rootCmd
}

// load reads the config file and applies flag overrides.
func (f *rootFlags) load() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	if f.batchSize != 0 {
		cfg.Search.BatchSize = f.batchSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	l, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return l, nil
}

func newSearcher(cfg *config.Config) *cpu.Searcher {
	return cpu.NewSearcher(
		cpu.WithBatchSize(cfg.Search.BatchSize),
		cpu.WithReportInterval(uint64(cfg.Search.ReportInterval)),
	)
}
