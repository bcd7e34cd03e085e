package slack

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type searchResponse struct {
	apiEnvelope
	Messages struct {
		Matches []searchMatch `json:"matches"`
		Total   int           `json:"total"`
	} `json:"messages"`
	ResponseMetadata responseMetadata `json:"response_metadata"`
}

// SearchMessages searches the workspace's full-text message index.
// When channel is non-empty the search is scoped to that channel (name
// or ID) with an in:#name qualifier. Results arrive newest first and are
// truncated to limit. Requires an elevated user token; bot tokens are
// rejected by the service with a permission error.
func (c *Client) SearchMessages(ctx context.Context, query, channel string, limit int) ([]Message, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	searchQuery := query
	if channel != "" {
		channelID, err := c.ResolveChannelID(ctx, channel)
		if err != nil {
			return nil, err
		}
		info, err := c.channelInfoByID(ctx, channelID)
		if err != nil {
			return nil, err
		}
		searchQuery = fmt.Sprintf("in:#%s %s", info.Name, query)
	}

	matches, err := collectPages(ctx, limit, func(ctx context.Context, cursor string) (page[searchMatch], error) {
		params := url.Values{}
		params.Set("query", searchQuery)
		params.Set("count", strconv.Itoa(min(limit, PageSize)))
		params.Set("sort", "timestamp")
		params.Set("sort_dir", "desc")
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var resp searchResponse
		if err := c.call(ctx, "search.messages", params, &resp); err != nil {
			return page[searchMatch]{}, err
		}
		return page[searchMatch]{items: resp.Messages.Matches, cursor: resp.ResponseMetadata.NextCursor}, nil
	})
	if err != nil {
		return nil, err
	}

	messages := make([]Message, len(matches))
	for i, m := range matches {
		username := ""
		if m.User != "" {
			username = c.getUser(ctx, m.User).DisplayOrRealName()
		}
		messages[i] = Message{
			Text:        m.Text,
			UserID:      m.User,
			Username:    username,
			ChannelID:   m.Channel.ID,
			ChannelName: m.Channel.Name,
			Timestamp:   m.TS,
			Permalink:   m.Permalink,
		}
	}
	return messages, nil
}
