package slack

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Canonical ID shapes. Channels start with C (public), G (private/group),
// or D (direct message); users start with U or W (Enterprise Grid).
var (
	channelIDPattern = regexp.MustCompile(`^[CGD][A-Z0-9]{7,}$`)
	userIDPattern    = regexp.MustCompile(`^[UW][A-Z0-9]{7,}$`)
)

// IsChannelID reports whether input is already shaped as a canonical
// channel ID.
func IsChannelID(input string) bool {
	return channelIDPattern.MatchString(input)
}

// IsUserID reports whether input is already shaped as a canonical user ID.
func IsUserID(input string) bool {
	return userIDPattern.MatchString(input)
}

// ResolveChannelID maps a channel name or ID to the canonical channel ID.
// Inputs already shaped as an ID are returned unchanged without any
// network call. Names are matched case-sensitively and exactly against
// the full channel directory, after stripping a leading '#'; the first
// match in listing order wins when names collide.
func (c *Client) ResolveChannelID(ctx context.Context, input string) (string, error) {
	if IsChannelID(input) {
		return input, nil
	}

	name := strings.TrimPrefix(input, "#")

	payloads, err := collectAllPages(ctx, func(ctx context.Context, cursor string) (page[channelPayload], error) {
		return c.listConversations(ctx, "public_channel,private_channel", false, cursor)
	})
	if err != nil {
		return "", err
	}

	for _, ch := range payloads {
		if ch.Name == name {
			return ch.ID, nil
		}
	}

	return "", fmt.Errorf("%w: channel %q", ErrNotFound, input)
}

// ResolveUserID maps a username or display name to the canonical user ID.
// Inputs already shaped as an ID are returned unchanged without any
// network call. Names are matched case-sensitively and exactly against
// the full user directory, after stripping a leading '@'; the first match
// in listing order wins when display names collide.
func (c *Client) ResolveUserID(ctx context.Context, input string) (string, error) {
	if IsUserID(input) {
		return input, nil
	}

	name := strings.TrimPrefix(input, "@")

	users, err := c.ListUsers(ctx)
	if err != nil {
		return "", err
	}

	for _, u := range users {
		if u.Name == name || u.DisplayName == name {
			return u.ID, nil
		}
	}

	return "", fmt.Errorf("%w: user %q", ErrNotFound, input)
}
