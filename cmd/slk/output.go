package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/slk-tools/slk/internal/slack"
)

// Text truncation lengths for human output.
const (
	MessageTextMaxLen = 200
	TopicMaxLen       = 50
)

// ErrorResponse is the JSON error output shape.
type ErrorResponse struct {
	Error string          `json:"error"`
	Kind  slack.ErrorKind `json:"kind,omitempty"`
}

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitCodeFor maps a classified failure kind to its exit code.
func exitCodeFor(kind slack.ErrorKind) int {
	switch kind {
	case slack.KindAuth:
		return ExitAuth
	case slack.KindPermission:
		return ExitPermission
	case slack.KindNotFound:
		return ExitNotFound
	case slack.KindRateLimited:
		return ExitRateLimited
	case slack.KindNetwork:
		return ExitNetworkError
	case slack.KindCancelled:
		return ExitCancelled
	}
	return ExitError
}

// exitClassified classifies err, reports it in the selected format, and
// exits with the kind's code.
func exitClassified(err error) {
	ce := slack.Classify(err)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", ce.Message)
	} else {
		outputJSON(ErrorResponse{Error: ce.Message, Kind: ce.Kind})
	}
	os.Exit(exitCodeFor(ce.Kind))
}

// exitWithError outputs a plain error in the appropriate format and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// formatTimestamp converts a Slack epoch timestamp ("1700000000.000100")
// to a readable local time.
func formatTimestamp(ts string) string {
	parts := strings.SplitN(ts, ".", 2)
	sec, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return ts
	}
	return time.Unix(sec, 0).Format("2006-01-02 15:04")
}

// truncateString shortens s to maxLen runes with an ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}

// printMessages writes messages in human-readable form.
func printMessages(messages []slack.Message, title string) {
	if len(messages) == 0 {
		fmt.Println("No messages found")
		return
	}

	fmt.Printf("%s (%d messages):\n\n", title, len(messages))
	for _, msg := range messages {
		channel := msg.ChannelName
		if channel != "" && !strings.HasPrefix(channel, "DM ") {
			channel = "#" + channel
		}
		fmt.Printf("[%s] %s | %s\n", formatTimestamp(msg.Timestamp), channel, msg.Username)
		fmt.Printf("    %s\n", truncateString(msg.Text, MessageTextMaxLen))
		if msg.Permalink != "" {
			fmt.Printf("    %s\n", msg.Permalink)
		}
		fmt.Println()
	}
}
