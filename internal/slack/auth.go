package slack

import (
	"context"
	"net/url"
)

type authTestResponse struct {
	apiEnvelope
	Team   string `json:"team"`
	TeamID string `json:"team_id"`
	User   string `json:"user"`
	UserID string `json:"user_id"`
	BotID  string `json:"bot_id"`
	URL    string `json:"url"`
}

// AuthTest verifies the credential against the service and returns the
// authenticated identity. Read-only; useful for checking a token before
// scripting against the workspace.
func (c *Client) AuthTest(ctx context.Context) (*Identity, error) {
	var resp authTestResponse
	if err := c.call(ctx, "auth.test", url.Values{}, &resp); err != nil {
		return nil, err
	}

	return &Identity{
		Team:   resp.Team,
		TeamID: resp.TeamID,
		User:   resp.User,
		UserID: resp.UserID,
		BotID:  resp.BotID,
		URL:    resp.URL,
	}, nil
}
