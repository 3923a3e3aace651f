package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/slack"
)

var (
	// ErrChannelNotFound means the name did not resolve to an accessible channel.
	ErrChannelNotFound = errors.New("channel not found")
	// ErrRetrievalFailed wraps any platform API failure. A failed page or
	// thread fetch discards everything collected for that call.
	ErrRetrievalFailed = errors.New("slack retrieval failed")
)

const (
	pageLimit          = 200
	defaultHours       = 24
	defaultMaxMessages = 500
)

// Subtypes that never reach the data model.
var skippedSubtypes = map[string]struct{}{
	"bot_message":   {},
	"channel_join":  {},
	"channel_leave": {},
}

type FetchOptions struct {
	Hours          int
	MaxMessages    int
	IncludeThreads bool
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.Hours <= 0 {
		o.Hours = defaultHours
	}
	if o.MaxMessages <= 0 {
		o.MaxMessages = defaultMaxMessages
	}
	return o
}

// Retriever turns a channel and a lookback window into a chronologically
// ordered message list, optionally enriched with thread replies. It owns a
// process-lifetime user-name cache; lookups for independent keys are safe
// from concurrent invocations.
type Retriever struct {
	api   slack.API
	now   func() time.Time
	names sync.Map
}

func NewRetriever(api slack.API) *Retriever {
	return &Retriever{
		api: api,
		now: time.Now,
	}
}

// ResolveChannel maps a channel name to its ID. Inputs already in ID form
// pass through unchanged.
func (r *Retriever) ResolveChannel(ctx context.Context, nameOrID string) (string, error) {
	if strings.HasPrefix(nameOrID, "C") {
		return nameOrID, nil
	}
	name := strings.TrimPrefix(nameOrID, "#")

	channels, err := r.api.ListChannels(ctx)
	if err != nil {
		return "", retrievalFailed("list channels", err)
	}
	for _, ch := range channels {
		if ch.Name == name {
			return ch.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q (is the bot invited?)", ErrChannelNotFound, name)
}

// FetchMessages retrieves the channel's history inside the lookback window,
// filters out system and bot entries, resolves authors, and returns the
// result sorted ascending by timestamp. When opts.IncludeThreads is set,
// every message with outstanding replies carries its ordered reply list.
func (r *Retriever) FetchMessages(ctx context.Context, channel string, opts FetchOptions) ([]slack.Message, error) {
	opts = opts.withDefaults()

	channelID, err := r.ResolveChannel(ctx, channel)
	if err != nil {
		return nil, err
	}

	oldest := slackTimestamp(r.now().Add(-time.Duration(opts.Hours) * time.Hour))

	var messages []slack.Message
	cursor := ""
	for len(messages) < opts.MaxMessages {
		limit := pageLimit
		if remaining := opts.MaxMessages - len(messages); remaining < limit {
			limit = remaining
		}
		page, err := r.api.HistoryPage(ctx, slack.HistoryParams{
			ChannelID: channelID,
			Oldest:    oldest,
			Limit:     limit,
			Cursor:    cursor,
		})
		if err != nil {
			return nil, retrievalFailed("fetch channel history", err)
		}

		for _, raw := range page.Messages {
			msg, ok := r.convert(ctx, raw)
			if !ok {
				continue
			}
			messages = append(messages, msg)
		}

		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	if opts.IncludeThreads {
		for i := range messages {
			if messages[i].ReplyCount == 0 || messages[i].ThreadID == "" {
				continue
			}
			replies, err := r.fetchThreadReplies(ctx, channelID, messages[i].ThreadID)
			if err != nil {
				return nil, err
			}
			messages[i].Replies = replies
		}
	}

	sortByTimestamp(messages)
	return messages, nil
}

// fetchThreadReplies pages through one thread, excluding the root itself.
func (r *Retriever) fetchThreadReplies(ctx context.Context, channelID, threadTS string) ([]slack.Message, error) {
	var replies []slack.Message
	cursor := ""
	for {
		page, err := r.api.RepliesPage(ctx, slack.RepliesParams{
			ChannelID:       channelID,
			ThreadTimestamp: threadTS,
			Limit:           pageLimit,
			Cursor:          cursor,
		})
		if err != nil {
			return nil, retrievalFailed("fetch thread replies", err)
		}

		for _, raw := range page.Messages {
			if raw.Timestamp == threadTS {
				continue
			}
			msg, ok := r.convert(ctx, raw)
			if !ok {
				continue
			}
			msg.IsReply = true
			msg.ThreadID = ""
			msg.ReplyCount = 0
			replies = append(replies, msg)
		}

		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	sortByTimestamp(replies)
	return replies, nil
}

// PostMessage resolves the channel and posts text to it.
func (r *Retriever) PostMessage(ctx context.Context, channel, text string) error {
	channelID, err := r.ResolveChannel(ctx, channel)
	if err != nil {
		return err
	}
	if err := r.api.PostMessage(ctx, channelID, text); err != nil {
		return retrievalFailed("post message", err)
	}
	return nil
}

// convert filters and translates one raw record. System and bot subtypes are
// dropped, as are malformed records with no author or no text.
func (r *Retriever) convert(ctx context.Context, raw slack.RawMessage) (slack.Message, bool) {
	if _, skip := skippedSubtypes[raw.Subtype]; skip {
		return slack.Message{}, false
	}
	if raw.UserID == "" || raw.Text == "" {
		return slack.Message{}, false
	}

	msg := slack.Message{
		Timestamp:  parseSlackTimestamp(raw.Timestamp),
		Author:     r.resolveUserName(ctx, raw.UserID),
		Text:       raw.Text,
		ReplyCount: raw.ReplyCount,
	}
	if raw.ReplyCount > 0 {
		msg.ThreadID = raw.Timestamp
	}
	return msg, true
}

// resolveUserName returns the cached display name for a user ID, looking it
// up on first reference. Failed lookups fall back to the raw ID without
// caching the failure, so a later call can still resolve it.
func (r *Retriever) resolveUserName(ctx context.Context, userID string) string {
	if cached, ok := r.names.Load(userID); ok {
		return cached.(string)
	}
	name, err := r.api.LookupUserName(ctx, userID)
	if err != nil || name == "" {
		return userID
	}
	r.names.Store(userID, name)
	return name
}

func retrievalFailed(op string, err error) error {
	return fmt.Errorf("%s: %w: %s", op, ErrRetrievalFailed, err)
}

func sortByTimestamp(msgs []slack.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
}

// slackTimestamp renders a time in Slack's fractional-seconds form.
func slackTimestamp(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixNano())/1e9, 'f', 6, 64)
}

// parseSlackTimestamp parses "1700000000.123456". Unparseable input yields
// the zero time, which sorts first rather than dropping the message.
func parseSlackTimestamp(ts string) time.Time {
	f, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return time.Time{}
	}
	sec := int64(f)
	nsec := int64((f - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
