package slack

// Message is a message from search results or conversation history.
type Message struct {
	Text        string `json:"text"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
	Timestamp   string `json:"ts"`
	Permalink   string `json:"permalink,omitempty"`
}

// Channel is a workspace channel.
type Channel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsPrivate   bool   `json:"is_private"`
	IsArchived  bool   `json:"is_archived"`
	Topic       string `json:"topic"`
	Purpose     string `json:"purpose"`
	MemberCount int    `json:"member_count,omitempty"`
}

// User is a workspace member.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RealName    string `json:"real_name"`
	DisplayName string `json:"display_name"`
	IsBot       bool   `json:"is_bot"`
}

// Conversation is an open direct-message conversation.
type Conversation struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	UserName        string `json:"user_name"`
	UserDisplayName string `json:"user_display_name"`
}

// Identity is the authenticated identity reported by auth.test.
type Identity struct {
	Team   string `json:"team"`
	TeamID string `json:"team_id"`
	User   string `json:"user"`
	UserID string `json:"user_id"`
	BotID  string `json:"bot_id,omitempty"`
	URL    string `json:"url"`
}

// DisplayOrRealName returns the user's display name, falling back to the
// real name and then the account name.
func (u User) DisplayOrRealName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.RealName != "" {
		return u.RealName
	}
	return u.Name
}

// apiEnvelope is the common ok/error wrapper on every Slack API response.
type apiEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// responseMetadata carries the pagination cursor.
type responseMetadata struct {
	NextCursor string `json:"next_cursor"`
}

// channelPayload is a channel object as returned by conversations.list
// and conversations.info.
type channelPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsPrivate  bool   `json:"is_private"`
	IsArchived bool   `json:"is_archived"`
	IsIM       bool   `json:"is_im"`
	User       string `json:"user"` // peer user for IM conversations
	NumMembers int    `json:"num_members"`
	Topic      struct {
		Value string `json:"value"`
	} `json:"topic"`
	Purpose struct {
		Value string `json:"value"`
	} `json:"purpose"`
}

func (p channelPayload) toChannel() Channel {
	return Channel{
		ID:          p.ID,
		Name:        p.Name,
		IsPrivate:   p.IsPrivate,
		IsArchived:  p.IsArchived,
		Topic:       p.Topic.Value,
		Purpose:     p.Purpose.Value,
		MemberCount: p.NumMembers,
	}
}

// userPayload is a member object as returned by users.list and users.info.
type userPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RealName string `json:"real_name"`
	Deleted  bool   `json:"deleted"`
	IsBot    bool   `json:"is_bot"`
	Profile  struct {
		DisplayName string `json:"display_name"`
		RealName    string `json:"real_name"`
	} `json:"profile"`
}

func (p userPayload) toUser() User {
	realName := p.RealName
	if realName == "" {
		realName = p.Profile.RealName
	}
	return User{
		ID:          p.ID,
		Name:        p.Name,
		RealName:    realName,
		DisplayName: p.Profile.DisplayName,
		IsBot:       p.IsBot,
	}
}

// messagePayload is a message object from conversations.history.
type messagePayload struct {
	Type    string `json:"type"`
	SubType string `json:"subtype,omitempty"`
	User    string `json:"user"`
	Text    string `json:"text"`
	TS      string `json:"ts"`
}

// searchMatch is a match object from search.messages.
type searchMatch struct {
	Text      string `json:"text"`
	User      string `json:"user"`
	TS        string `json:"ts"`
	Permalink string `json:"permalink"`
	Channel   struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"channel"`
}
