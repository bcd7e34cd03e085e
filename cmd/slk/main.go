// Package main provides the slk CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// Ctrl-C aborts any in-flight pagination or backoff wait.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slk",
	Short: "Search and browse a Slack workspace from the terminal",
	Long: `slk is a read-only CLI for Slack workspaces.

Search messages, list and inspect channels, and browse direct-message
history. All commands output JSON by default for easy integration with
scripts and other tools; use --human for readable output.

Requires SLACK_CLI_TOKEN with a user (xoxp-) or bot (xoxb-) token.
Search requires a user token; bot tokens cover channel and DM browsing
for conversations the bot is a member of.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for SLACK_CLI_TOKEN)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
