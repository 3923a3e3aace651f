package slack

import (
	"context"

	slackgo "github.com/slack-go/slack"

	slackpkg "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/slack"
)

const listPageLimit = 200

// Client implements the platform API over the Slack Web API SDK.
type Client struct {
	api *slackgo.Client
}

func NewClient(token string) slackpkg.API {
	return &Client{api: slackgo.New(token)}
}

// ListChannels returns the public channels the bot is a member of.
func (c *Client) ListChannels(ctx context.Context) ([]slackpkg.Channel, error) {
	var out []slackpkg.Channel
	cursor := ""
	for {
		channels, nextCursor, err := c.api.GetConversationsContext(ctx, &slackgo.GetConversationsParameters{
			Types:           []string{"public_channel"},
			ExcludeArchived: true,
			Limit:           listPageLimit,
			Cursor:          cursor,
		})
		if err != nil {
			return nil, err
		}
		for _, ch := range channels {
			if !ch.IsMember {
				continue
			}
			out = append(out, slackpkg.Channel{ID: ch.ID, Name: ch.Name})
		}
		if nextCursor == "" {
			return out, nil
		}
		cursor = nextCursor
	}
}

// LookupUserName prefers the profile's real name over the handle.
func (c *Client) LookupUserName(ctx context.Context, userID string) (string, error) {
	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.RealName != "" {
		return user.RealName, nil
	}
	return user.Name, nil
}

func (c *Client) HistoryPage(ctx context.Context, params slackpkg.HistoryParams) (slackpkg.Page, error) {
	resp, err := c.api.GetConversationHistoryContext(ctx, &slackgo.GetConversationHistoryParameters{
		ChannelID: params.ChannelID,
		Oldest:    params.Oldest,
		Limit:     params.Limit,
		Cursor:    params.Cursor,
	})
	if err != nil {
		return slackpkg.Page{}, err
	}
	return slackpkg.Page{
		Messages:   rawMessages(resp.Messages),
		HasMore:    resp.HasMore,
		NextCursor: resp.ResponseMetaData.NextCursor,
	}, nil
}

func (c *Client) RepliesPage(ctx context.Context, params slackpkg.RepliesParams) (slackpkg.Page, error) {
	msgs, hasMore, nextCursor, err := c.api.GetConversationRepliesContext(ctx, &slackgo.GetConversationRepliesParameters{
		ChannelID: params.ChannelID,
		Timestamp: params.ThreadTimestamp,
		Limit:     params.Limit,
		Cursor:    params.Cursor,
	})
	if err != nil {
		return slackpkg.Page{}, err
	}
	return slackpkg.Page{
		Messages:   rawMessages(msgs),
		HasMore:    hasMore,
		NextCursor: nextCursor,
	}, nil
}

func (c *Client) PostMessage(ctx context.Context, channelID, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID, slackgo.MsgOptionText(text, false))
	return err
}

func (c *Client) AuthCheck(ctx context.Context) error {
	_, err := c.api.AuthTestContext(ctx)
	return err
}

func rawMessages(msgs []slackgo.Message) []slackpkg.RawMessage {
	out := make([]slackpkg.RawMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, rawMessage(m))
	}
	return out
}

func rawMessage(m slackgo.Message) slackpkg.RawMessage {
	return slackpkg.RawMessage{
		Timestamp:  m.Timestamp,
		UserID:     m.User,
		Text:       m.Text,
		Subtype:    m.SubType,
		BotID:      m.BotID,
		ReplyCount: m.ReplyCount,
	}
}
