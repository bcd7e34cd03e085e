package slack

import (
	"context"
	"net/url"
	"strconv"
)

type usersListResponse struct {
	apiEnvelope
	Members          []userPayload    `json:"members"`
	ResponseMetadata responseMetadata `json:"response_metadata"`
}

type usersInfoResponse struct {
	apiEnvelope
	User userPayload `json:"user"`
}

// ListUsers lists all non-deleted members of the workspace.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	payloads, err := collectAllPages(ctx, func(ctx context.Context, cursor string) (page[userPayload], error) {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(PageSize))
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var resp usersListResponse
		if err := c.call(ctx, "users.list", params, &resp); err != nil {
			return page[userPayload]{}, err
		}
		return page[userPayload]{items: resp.Members, cursor: resp.ResponseMetadata.NextCursor}, nil
	})
	if err != nil {
		return nil, err
	}

	var users []User
	for _, p := range payloads {
		if p.Deleted {
			continue
		}
		u := p.toUser()
		c.userCache[u.ID] = u
		users = append(users, u)
	}
	return users, nil
}

// getUser fetches a single user by ID, consulting the per-invocation
// cache first. Lookup failures degrade to a placeholder so message
// enrichment never fails a whole command.
func (c *Client) getUser(ctx context.Context, userID string) User {
	if u, ok := c.userCache[userID]; ok {
		return u
	}

	params := url.Values{}
	params.Set("user", userID)

	var resp usersInfoResponse
	if err := c.call(ctx, "users.info", params, &resp); err != nil {
		return User{ID: userID, Name: userID}
	}

	u := resp.User.toUser()
	c.userCache[u.ID] = u
	return u
}
