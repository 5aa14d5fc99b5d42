package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "medeval",
		Short: "medeval - evaluation harness for symptom-checker providers",
		Long: `medeval drives candidate answer providers (a symptom-checker backend
under test, or a hosted model called directly) against a fixed suite of
test cases, scores every response along three deterministic quality
pillars, and aggregates ranked per-provider summaries.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}

		// Credentials (HF_TOKEN etc.) may live in a local .env; a missing
		// file is fine.
		if err := godotenv.Load(); err == nil {
			slog.Debug("loaded environment from .env")
		}
	}

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newVisualizeCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
