package slack

import (
	"context"
	"net/url"
	"strconv"
)

// ListChannelsOptions controls which conversations are listed.
type ListChannelsOptions struct {
	IncludePrivate  bool
	IncludeArchived bool
}

type conversationsListResponse struct {
	apiEnvelope
	Channels         []channelPayload `json:"channels"`
	ResponseMetadata responseMetadata `json:"response_metadata"`
}

type conversationsInfoResponse struct {
	apiEnvelope
	Channel channelPayload `json:"channel"`
}

type conversationsHistoryResponse struct {
	apiEnvelope
	Messages         []messagePayload `json:"messages"`
	HasMore          bool             `json:"has_more"`
	ResponseMetadata responseMetadata `json:"response_metadata"`
}

// listConversations fetches one page of conversations.list for the
// given types string ("public_channel,private_channel" or "im").
func (c *Client) listConversations(ctx context.Context, types string, excludeArchived bool, cursor string) (page[channelPayload], error) {
	params := url.Values{}
	params.Set("types", types)
	params.Set("limit", strconv.Itoa(PageSize))
	params.Set("exclude_archived", strconv.FormatBool(excludeArchived))
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var resp conversationsListResponse
	if err := c.call(ctx, "conversations.list", params, &resp); err != nil {
		return page[channelPayload]{}, err
	}
	return page[channelPayload]{items: resp.Channels, cursor: resp.ResponseMetadata.NextCursor}, nil
}

// ListChannels lists channels in the workspace, walking all pages.
func (c *Client) ListChannels(ctx context.Context, opts ListChannelsOptions) ([]Channel, error) {
	types := "public_channel"
	if opts.IncludePrivate {
		types = "public_channel,private_channel"
	}

	payloads, err := collectAllPages(ctx, func(ctx context.Context, cursor string) (page[channelPayload], error) {
		return c.listConversations(ctx, types, !opts.IncludeArchived, cursor)
	})
	if err != nil {
		return nil, err
	}

	channels := make([]Channel, len(payloads))
	for i, p := range payloads {
		channels[i] = p.toChannel()
	}
	return channels, nil
}

// GetChannelInfo fetches detailed information about a channel, resolving
// a display name to its canonical ID first.
func (c *Client) GetChannelInfo(ctx context.Context, channel string) (*Channel, error) {
	channelID, err := c.ResolveChannelID(ctx, channel)
	if err != nil {
		return nil, err
	}
	return c.channelInfoByID(ctx, channelID)
}

func (c *Client) channelInfoByID(ctx context.Context, channelID string) (*Channel, error) {
	params := url.Values{}
	params.Set("channel", channelID)

	var resp conversationsInfoResponse
	if err := c.call(ctx, "conversations.info", params, &resp); err != nil {
		return nil, err
	}
	ch := resp.Channel.toChannel()
	return &ch, nil
}

// GetChannelHistory fetches up to limit messages from a channel, newest
// first as the API returns them. The channel may be a name or an ID.
func (c *Client) GetChannelHistory(ctx context.Context, channel string, limit int) ([]Message, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	channelID, err := c.ResolveChannelID(ctx, channel)
	if err != nil {
		return nil, err
	}

	channelName := channelID
	if info, err := c.channelInfoByID(ctx, channelID); err == nil {
		channelName = info.Name
	}

	return c.conversationHistory(ctx, channelID, channelName, limit)
}

// conversationHistory walks conversations.history for any conversation ID.
func (c *Client) conversationHistory(ctx context.Context, conversationID, conversationName string, limit int) ([]Message, error) {
	payloads, err := collectPages(ctx, limit, func(ctx context.Context, cursor string) (page[messagePayload], error) {
		params := url.Values{}
		params.Set("channel", conversationID)
		params.Set("limit", strconv.Itoa(min(limit, PageSize)))
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var resp conversationsHistoryResponse
		if err := c.call(ctx, "conversations.history", params, &resp); err != nil {
			return page[messagePayload]{}, err
		}
		return page[messagePayload]{items: resp.Messages, cursor: resp.ResponseMetadata.NextCursor}, nil
	})
	if err != nil {
		return nil, err
	}

	messages := make([]Message, len(payloads))
	for i, m := range payloads {
		username := ""
		if m.User != "" {
			username = c.getUser(ctx, m.User).DisplayOrRealName()
		}
		messages[i] = Message{
			Text:        m.Text,
			UserID:      m.User,
			Username:    username,
			ChannelID:   conversationID,
			ChannelName: conversationName,
			Timestamp:   m.TS,
		}
	}
	return messages, nil
}
