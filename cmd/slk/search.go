package main

import (
	"fmt"

	"github.com/slk-tools/slk/internal/slack"
	"github.com/spf13/cobra"
)

var (
	searchChannel string
	searchLimit   int
)

func init() {
	searchCmd.Flags().StringVarP(&searchChannel, "channel", "c", "", "Limit search to a specific channel (name or ID)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search messages in the workspace",
	Long: `Search messages in the workspace using Slack's full-text index.

Requires a user (xoxp-) token with the search:read scope; bot tokens
cannot use the search API.

Examples:
  slk search "deploy failed"
  slk search "release notes" --channel engineering
  slk search "incident" -n 50`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	client := mustNewClient()

	limit := searchLimit
	if limit == 0 {
		limit = defaultLimit(configuredDefaults().DefaultSearchLimit, slack.DefaultSearchLimit)
	}

	messages, err := client.SearchMessages(cmd.Context(), args[0], searchChannel, limit)
	if err != nil {
		exitClassified(err)
	}

	if messages == nil {
		messages = []slack.Message{}
	}

	if humanOutput {
		printMessages(messages, fmt.Sprintf("Search results for %q", args[0]))
	} else {
		outputJSON(messages)
	}

	return nil
}
