// Package cli provides the command-line interface for the bot.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ytsummary",
	Short: "Slack bot that summarizes YouTube videos",
	Long: `ytsummary listens for Slack mentions containing a YouTube link, fetches
the video's transcript, asks a language model for a structured summary, and
posts it back into the conversation thread.`,
	Version: Version,
}

// logLevelOverride returns the debug level when --verbose was passed.
func logLevelOverride(configured slog.Level) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return configured
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd)
}
