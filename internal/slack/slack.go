package slack

import (
	"context"
	"time"
)

// Channel is a conversation the bot can access.
type Channel struct {
	ID   string
	Name string
}

// Message is one unit of channel activity after filtering and author
// resolution. Replies are at most one level deep.
type Message struct {
	Timestamp  time.Time
	Author     string
	Text       string
	ThreadID   string
	ReplyCount int
	IsReply    bool
	Replies    []Message
}

// RawMessage is a message record as the platform reports it, before any
// filtering or author resolution. Timestamp keeps Slack's fractional-seconds
// string form so thread roots can be matched exactly.
type RawMessage struct {
	Timestamp  string
	UserID     string
	Text       string
	Subtype    string
	BotID      string
	ReplyCount int
}

// Page is one page of a cursor-driven listing.
type Page struct {
	Messages   []RawMessage
	HasMore    bool
	NextCursor string
}

type HistoryParams struct {
	ChannelID string
	Oldest    string
	Limit     int
	Cursor    string
}

type RepliesParams struct {
	ChannelID       string
	ThreadTimestamp string
	Limit           int
	Cursor          string
}

type API interface {
	ListChannels(ctx context.Context) ([]Channel, error)
	LookupUserName(ctx context.Context, userID string) (string, error)
	HistoryPage(ctx context.Context, params HistoryParams) (Page, error)
	RepliesPage(ctx context.Context, params RepliesParams) (Page, error)
	PostMessage(ctx context.Context, channelID, text string) error
	AuthCheck(ctx context.Context) error
}
