package slack

import (
	"context"
	"fmt"
	"net/url"
)

type conversationsOpenResponse struct {
	apiEnvelope
	Channel struct {
		ID string `json:"id"`
	} `json:"channel"`
}

// ListDMs lists all open direct-message conversations, enriched with the
// peer user's names.
func (c *Client) ListDMs(ctx context.Context) ([]Conversation, error) {
	payloads, err := collectAllPages(ctx, func(ctx context.Context, cursor string) (page[channelPayload], error) {
		return c.listConversations(ctx, "im", false, cursor)
	})
	if err != nil {
		return nil, err
	}

	conversations := make([]Conversation, len(payloads))
	for i, p := range payloads {
		conv := Conversation{ID: p.ID, UserID: p.User}
		if p.User != "" {
			u := c.getUser(ctx, p.User)
			conv.UserName = u.Name
			conv.UserDisplayName = u.DisplayOrRealName()
		}
		conversations[i] = conv
	}
	return conversations, nil
}

// GetDMHistory fetches up to limit messages from the direct-message
// conversation with a user (name or ID). The conversation is opened
// first to obtain its channel ID; opening an existing DM is idempotent
// and does not send anything.
func (c *Client) GetDMHistory(ctx context.Context, user string, limit int) ([]Message, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	userID, err := c.ResolveUserID(ctx, user)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("users", userID)

	var resp conversationsOpenResponse
	if err := c.call(ctx, "conversations.open", params, &resp); err != nil {
		return nil, err
	}

	peer := c.getUser(ctx, userID)
	name := fmt.Sprintf("DM with %s", peer.DisplayOrRealName())

	return c.conversationHistory(ctx, resp.Channel.ID, name, limit)
}
