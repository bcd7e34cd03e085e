package main

import (
	"fmt"

	"github.com/slk-tools/slk/internal/slack"
	"github.com/spf13/cobra"
)

var (
	channelListPrivate  bool
	channelListArchived bool
	channelListType     string
	channelHistoryLimit int
)

var channelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Channel operations",
	Long: `List channels, fetch message history, and inspect channel details.

A channel may be given by name (with or without a leading '#') or by its
canonical ID (e.g. C0123ABCDEF). Names are resolved against the channel
directory with an exact, case-sensitive match.`,
}

func init() {
	channelListCmd.Flags().BoolVarP(&channelListPrivate, "private", "p", false, "Include private channels")
	channelListCmd.Flags().BoolVarP(&channelListArchived, "archived", "a", false, "Include archived channels")
	channelListCmd.Flags().StringVarP(&channelListType, "type", "t", "", "Filter by type: public, private")
	channelHistoryCmd.Flags().IntVarP(&channelHistoryLimit, "limit", "n", 0, "Number of messages to retrieve")

	channelCmd.AddCommand(channelListCmd)
	channelCmd.AddCommand(channelHistoryCmd)
	channelCmd.AddCommand(channelInfoCmd)
	rootCmd.AddCommand(channelCmd)
}

var channelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List channels in the workspace",
	Args:  cobra.NoArgs,
	RunE:  runChannelList,
}

func runChannelList(cmd *cobra.Command, args []string) error {
	client := mustNewClient()

	includePrivate := channelListPrivate || channelListType == "private"

	channels, err := client.ListChannels(cmd.Context(), slack.ListChannelsOptions{
		IncludePrivate:  includePrivate,
		IncludeArchived: channelListArchived,
	})
	if err != nil {
		exitClassified(err)
	}

	switch channelListType {
	case "private":
		channels = filterChannels(channels, func(ch slack.Channel) bool { return ch.IsPrivate })
	case "public":
		channels = filterChannels(channels, func(ch slack.Channel) bool { return !ch.IsPrivate })
	}

	if channels == nil {
		channels = []slack.Channel{}
	}

	if humanOutput {
		printChannels(channels)
	} else {
		outputJSON(channels)
	}

	return nil
}

func filterChannels(channels []slack.Channel, keep func(slack.Channel) bool) []slack.Channel {
	var out []slack.Channel
	for _, ch := range channels {
		if keep(ch) {
			out = append(out, ch)
		}
	}
	return out
}

var channelHistoryCmd = &cobra.Command{
	Use:   "history <channel>",
	Short: "Get message history from a channel",
	Args:  cobra.ExactArgs(1),
	RunE:  runChannelHistory,
}

func runChannelHistory(cmd *cobra.Command, args []string) error {
	client := mustNewClient()

	limit := channelHistoryLimit
	if limit == 0 {
		limit = defaultLimit(configuredDefaults().DefaultHistoryLimit, slack.DefaultHistoryLimit)
	}

	messages, err := client.GetChannelHistory(cmd.Context(), args[0], limit)
	if err != nil {
		exitClassified(err)
	}

	if messages == nil {
		messages = []slack.Message{}
	}

	if humanOutput {
		title := "History"
		if len(messages) > 0 {
			title = fmt.Sprintf("History of #%s", messages[0].ChannelName)
		}
		printMessages(messages, title)
	} else {
		outputJSON(messages)
	}

	return nil
}

var channelInfoCmd = &cobra.Command{
	Use:   "info <channel>",
	Short: "Get detailed information about a channel",
	Args:  cobra.ExactArgs(1),
	RunE:  runChannelInfo,
}

func runChannelInfo(cmd *cobra.Command, args []string) error {
	client := mustNewClient()

	info, err := client.GetChannelInfo(cmd.Context(), args[0])
	if err != nil {
		exitClassified(err)
	}

	if humanOutput {
		printChannelInfo(info)
	} else {
		outputJSON(info)
	}

	return nil
}

// printChannels writes channels in human-readable form.
func printChannels(channels []slack.Channel) {
	if len(channels) == 0 {
		fmt.Println("No channels found")
		return
	}

	fmt.Printf("Found %d channels:\n\n", len(channels))
	for _, ch := range channels {
		kind := "public"
		if ch.IsPrivate {
			kind = "private"
		}
		if ch.IsArchived {
			kind += ", archived"
		}
		fmt.Printf("#%-24s %-18s %4d members  %s\n", ch.Name, "("+kind+")", ch.MemberCount, truncateString(ch.Topic, TopicMaxLen))
	}
}

// printChannelInfo writes one channel's details in human-readable form.
func printChannelInfo(ch *slack.Channel) {
	fmt.Printf("Name:    #%s\n", ch.Name)
	fmt.Printf("ID:      %s\n", ch.ID)
	kind := "Public"
	if ch.IsPrivate {
		kind = "Private"
	}
	fmt.Printf("Type:    %s\n", kind)
	if ch.MemberCount > 0 {
		fmt.Printf("Members: %d\n", ch.MemberCount)
	}
	if ch.IsArchived {
		fmt.Printf("Status:  Archived\n")
	}
	if ch.Topic != "" {
		fmt.Printf("Topic:   %s\n", ch.Topic)
	}
	if ch.Purpose != "" {
		fmt.Printf("Purpose: %s\n", ch.Purpose)
	}
}
