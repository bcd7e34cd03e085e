package main

import (
	"fmt"

	"github.com/slk-tools/slk/internal/slack"
	"github.com/spf13/cobra"
)

var dmHistoryLimit int

var dmCmd = &cobra.Command{
	Use:   "dm",
	Short: "Direct message operations",
	Long: `List direct-message conversations and browse their history.

A user may be given by username (with or without a leading '@') or by
canonical ID (e.g. U0123ABCDEF).`,
}

func init() {
	dmHistoryCmd.Flags().IntVarP(&dmHistoryLimit, "limit", "n", 0, "Number of messages to retrieve")

	dmCmd.AddCommand(dmListCmd)
	dmCmd.AddCommand(dmHistoryCmd)
	rootCmd.AddCommand(dmCmd)
}

var dmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all DM conversations",
	Args:  cobra.NoArgs,
	RunE:  runDMList,
}

func runDMList(cmd *cobra.Command, args []string) error {
	client := mustNewClient()

	conversations, err := client.ListDMs(cmd.Context())
	if err != nil {
		exitClassified(err)
	}

	if conversations == nil {
		conversations = []slack.Conversation{}
	}

	if humanOutput {
		printConversations(conversations)
	} else {
		outputJSON(conversations)
	}

	return nil
}

var dmHistoryCmd = &cobra.Command{
	Use:   "history <user>",
	Short: "Get message history with a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runDMHistory,
}

func runDMHistory(cmd *cobra.Command, args []string) error {
	client := mustNewClient()

	limit := dmHistoryLimit
	if limit == 0 {
		limit = defaultLimit(configuredDefaults().DefaultHistoryLimit, slack.DefaultHistoryLimit)
	}

	messages, err := client.GetDMHistory(cmd.Context(), args[0], limit)
	if err != nil {
		exitClassified(err)
	}

	if messages == nil {
		messages = []slack.Message{}
	}

	if humanOutput {
		title := fmt.Sprintf("DM history with %s", args[0])
		if len(messages) > 0 {
			title = messages[0].ChannelName
		}
		printMessages(messages, title)
	} else {
		outputJSON(messages)
	}

	return nil
}

// printConversations writes DM conversations in human-readable form.
func printConversations(conversations []slack.Conversation) {
	if len(conversations) == 0 {
		fmt.Println("No DM conversations found")
		return
	}

	fmt.Printf("Found %d DM conversations:\n\n", len(conversations))
	for _, conv := range conversations {
		name := conv.UserDisplayName
		if name == "" {
			name = conv.UserID
		}
		fmt.Printf("%-24s @%-20s %s\n", name, conv.UserName, conv.ID)
	}
}
