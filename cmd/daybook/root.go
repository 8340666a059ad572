// ABOUTME: Root Cobra command and global flags for the daybook CLI.
// ABOUTME: Sets up lifecycle hooks for config loading, logging, and store initialization.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/2389-research/daybook/internal/config"
	"github.com/2389-research/daybook/internal/logging"
	"github.com/2389-research/daybook/internal/storage"
)

var version = "dev"

var globalConfig *config.Config
var globalLogger *zap.SugaredLogger
var globalStore storage.JournalStore

// Flags
var (
	dataDirFlag  string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:     "daybook",
	Short:   "A private daily journal",
	Version: version,
	Long: `
██████╗  █████╗ ██╗   ██╗██████╗  ██████╗  ██████╗ ██╗  ██╗
██╔══██╗██╔══██╗╚██╗ ██╔╝██╔══██╗██╔═══██╗██╔═══██╗██║ ██╔╝
██║  ██║███████║ ╚████╔╝ ██████╔╝██║   ██║██║   ██║█████╔╝
██║  ██║██╔══██║  ╚██╔╝  ██╔══██╗██║   ██║██║   ██║██╔═██╗
██████╔╝██║  ██║   ██║   ██████╔╝╚██████╔╝╚██████╔╝██║  ██╗
╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚═════╝  ╚═════╝  ╚═════╝ ╚═╝  ╚═╝

Dated diary entries with moods, tags, and photos.
Everything stays in one local file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDirFlag != "" {
			cfg.Journal.DataDir = dataDirFlag
		}
		if logLevelFlag != "" {
			cfg.Log.Level = logLevelFlag
		}
		globalConfig = cfg

		logger, err := logging.New(cfg.GetLogLevel())
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		globalLogger = logger

		entriesPath, err := cfg.GetEntriesPath()
		if err != nil {
			return fmt.Errorf("failed to resolve entries path: %w", err)
		}
		store, err := storage.NewFileStore(entriesPath, storage.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to open journal store: %w", err)
		}
		globalStore = store

		logger.Debugw("journal store opened", "path", entriesPath, "entries", len(store.Entries()))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalStore != nil {
			_ = globalStore.Close()
			globalStore = nil
		}
		if globalLogger != nil {
			_ = globalLogger.Sync()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Directory holding entries.json (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
}
