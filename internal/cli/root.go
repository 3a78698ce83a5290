// Package cli provides the command-line interface for Cosmus.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cosmusapp/cosmus-go/internal/config"
	"github.com/cosmusapp/cosmus-go/internal/history"
	"github.com/cosmusapp/cosmus-go/internal/llm"
	"github.com/cosmusapp/cosmus-go/internal/metrics"
	"github.com/cosmusapp/cosmus-go/internal/nasa"
	"github.com/cosmusapp/cosmus-go/internal/retry"
	"github.com/cosmusapp/cosmus-go/internal/session"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	configFile string
	verbose    bool
	userName   string

	// Global config and logger, set up once per invocation
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error

	// Lazy-initialized conversation core
	model    *llm.Model
	sessions *session.Manager
	engine   *nasa.Engine
	store    *history.Store
	stats    *metrics.Collector
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cosmus",
	Short: "Socratic astronomy tutor for young explorers",
	Long: `Cosmus is a conversational astronomy tutor for children: it answers with
guiding questions, illustrates with real space agency imagery, and keeps
the whole exchange in Portuguese.

Chat interactively, ask one-shot questions, or browse archive media.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		if configFile != "" {
			cfg, err = config.LoadWithFile(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
		} else {
			cfg = config.Load()
		}
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}
		if userName != "" {
			cfg.UserName = userName
		}

		logger, logCleanup = config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// initCore builds the conversation core. Commands that only touch the archive
// or the local history skip the model handle with requireModel=false.
func initCore(ctx context.Context, requireModel bool) error {
	stats = metrics.NewCollector()
	store = history.NewStore(cfg.HistoryFile, logger)

	archive := nasa.NewClient(cfg.ArchiveURL, logger, stats)
	engine = nasa.NewEngine(archive, logger)

	if !requireModel {
		return nil
	}

	var err error
	model, err = llm.NewModel(ctx, cfg, stats)
	if err != nil {
		return fmt.Errorf("init model: %w", err)
	}

	policy := retry.Policy{
		MaxAttempts:  cfg.RetryMaxAttempts,
		InitialDelay: cfg.RetryInitialDelay,
		Multiplier:   cfg.RetryMultiplier,
	}
	sessions = session.NewManager(model, policy, logger)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&userName, "name", "n", "", "explorer name for the session")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(greetCmd)
	rootCmd.AddCommand(mediaCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(usageCmd)
}
