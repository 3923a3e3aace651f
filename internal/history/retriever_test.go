package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/slack"
)

type pageResult struct {
	page slack.Page
	err  error
}

type fakeAPI struct {
	channels    []slack.Channel
	channelsErr error

	names       map[string]string
	nameErr     error
	nameLookups int

	historyPages []pageResult
	historyCalls []slack.HistoryParams

	repliesByThread map[string][]pageResult
	repliesCalls    []slack.RepliesParams

	posted  map[string]string
	postErr error
}

func (f *fakeAPI) ListChannels(ctx context.Context) ([]slack.Channel, error) {
	if f.channelsErr != nil {
		return nil, f.channelsErr
	}
	return f.channels, nil
}

func (f *fakeAPI) LookupUserName(ctx context.Context, userID string) (string, error) {
	f.nameLookups++
	if f.nameErr != nil {
		return "", f.nameErr
	}
	if name, ok := f.names[userID]; ok {
		return name, nil
	}
	return "", fmt.Errorf("user_not_found")
}

func (f *fakeAPI) HistoryPage(ctx context.Context, params slack.HistoryParams) (slack.Page, error) {
	f.historyCalls = append(f.historyCalls, params)
	idx := len(f.historyCalls) - 1
	if idx >= len(f.historyPages) {
		return slack.Page{}, nil
	}
	result := f.historyPages[idx]
	return result.page, result.err
}

func (f *fakeAPI) RepliesPage(ctx context.Context, params slack.RepliesParams) (slack.Page, error) {
	f.repliesCalls = append(f.repliesCalls, params)
	pages := f.repliesByThread[params.ThreadTimestamp]
	seen := 0
	for _, call := range f.repliesCalls[:len(f.repliesCalls)-1] {
		if call.ThreadTimestamp == params.ThreadTimestamp {
			seen++
		}
	}
	if seen >= len(pages) {
		return slack.Page{}, nil
	}
	result := pages[seen]
	return result.page, result.err
}

func (f *fakeAPI) PostMessage(ctx context.Context, channelID, text string) error {
	if f.postErr != nil {
		return f.postErr
	}
	if f.posted == nil {
		f.posted = map[string]string{}
	}
	f.posted[channelID] = text
	return nil
}

func (f *fakeAPI) AuthCheck(ctx context.Context) error { return nil }

func raw(ts, user, text string) slack.RawMessage {
	return slack.RawMessage{Timestamp: ts, UserID: user, Text: text}
}

func newTestRetriever(api *fakeAPI) *Retriever {
	r := NewRetriever(api)
	r.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestResolveChannel_IDPassthrough(t *testing.T) {
	r := newTestRetriever(&fakeAPI{})
	id, err := r.ResolveChannel(context.Background(), "C0123456")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != "C0123456" {
		t.Fatalf("expected ID passthrough, got %s", id)
	}
}

func TestResolveChannel_NameMatch(t *testing.T) {
	api := &fakeAPI{channels: []slack.Channel{
		{ID: "C001", Name: "random"},
		{ID: "C002", Name: "general"},
	}}
	r := newTestRetriever(api)

	id, err := r.ResolveChannel(context.Background(), "#general")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != "C002" {
		t.Fatalf("expected C002, got %s", id)
	}
}

func TestResolveChannel_NotFound(t *testing.T) {
	api := &fakeAPI{channels: []slack.Channel{{ID: "C001", Name: "random"}}}
	r := newTestRetriever(api)

	_, err := r.ResolveChannel(context.Background(), "general")
	if !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestResolveChannel_ListFailure(t *testing.T) {
	api := &fakeAPI{channelsErr: fmt.Errorf("missing_scope")}
	r := newTestRetriever(api)

	_, err := r.ResolveChannel(context.Background(), "general")
	if !errors.Is(err, ErrRetrievalFailed) {
		t.Fatalf("expected ErrRetrievalFailed, got %v", err)
	}
}

func TestFetchMessages_Pagination(t *testing.T) {
	api := &fakeAPI{
		names: map[string]string{"U1": "Alice"},
		historyPages: []pageResult{
			{page: slack.Page{Messages: []slack.RawMessage{raw("1700000005.000000", "U1", "five"), raw("1700000006.000000", "U1", "six")}, HasMore: true, NextCursor: "c1"}},
			{page: slack.Page{Messages: []slack.RawMessage{raw("1700000003.000000", "U1", "three"), raw("1700000004.000000", "U1", "four")}, HasMore: true, NextCursor: "c2"}},
			{page: slack.Page{Messages: []slack.RawMessage{raw("1700000001.000000", "U1", "one"), raw("1700000002.000000", "U1", "two")}}},
		},
	}
	r := newTestRetriever(api)

	messages, err := r.FetchMessages(context.Background(), "C0001", FetchOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(api.historyCalls) != 3 {
		t.Fatalf("expected 3 page requests, got %d", len(api.historyCalls))
	}
	if api.historyCalls[0].Cursor != "" || api.historyCalls[1].Cursor != "c1" || api.historyCalls[2].Cursor != "c2" {
		t.Fatalf("cursors not threaded through pages: %+v", api.historyCalls)
	}
	if len(messages) != 6 {
		t.Fatalf("expected 6 messages, got %d", len(messages))
	}
	assertAscending(t, messages)
	if messages[0].Text != "one" || messages[5].Text != "six" {
		t.Fatalf("messages not in chronological order: first=%q last=%q", messages[0].Text, messages[5].Text)
	}
}

func TestFetchMessages_SecondPageFailureDiscardsAll(t *testing.T) {
	api := &fakeAPI{
		names: map[string]string{"U1": "Alice"},
		historyPages: []pageResult{
			{page: slack.Page{Messages: []slack.RawMessage{raw("1700000001.000000", "U1", "one"), raw("1700000002.000000", "U1", "two")}, HasMore: true, NextCursor: "c1"}},
			{err: fmt.Errorf("ratelimited")},
		},
	}
	r := newTestRetriever(api)

	messages, err := r.FetchMessages(context.Background(), "C0001", FetchOptions{})
	if !errors.Is(err, ErrRetrievalFailed) {
		t.Fatalf("expected ErrRetrievalFailed, got %v", err)
	}
	if messages != nil {
		t.Fatalf("expected no partial result, got %d messages", len(messages))
	}
}

func TestFetchMessages_FiltersSystemAndMalformed(t *testing.T) {
	api := &fakeAPI{
		names: map[string]string{"U1": "Alice"},
		historyPages: []pageResult{
			{page: slack.Page{Messages: []slack.RawMessage{
				raw("1700000001.000000", "U1", "keep me"),
				{Timestamp: "1700000002.000000", UserID: "U2", Text: "bot noise", Subtype: "bot_message"},
				{Timestamp: "1700000003.000000", UserID: "U3", Text: "joined", Subtype: "channel_join"},
				{Timestamp: "1700000004.000000", UserID: "U4", Text: "left", Subtype: "channel_leave"},
				{Timestamp: "1700000005.000000", UserID: "", Text: "no author"},
				{Timestamp: "1700000006.000000", UserID: "U5", Text: ""},
			}}},
		},
	}
	r := newTestRetriever(api)

	messages, err := r.FetchMessages(context.Background(), "C0001", FetchOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message after filtering, got %d", len(messages))
	}
	if messages[0].Text != "keep me" || messages[0].Author != "Alice" {
		t.Fatalf("unexpected surviving message: %+v", messages[0])
	}
}

func TestFetchMessages_RepliesOnlyWhenRequested(t *testing.T) {
	root := slack.RawMessage{Timestamp: "1700000010.000000", UserID: "U1", Text: "root", ReplyCount: 2}
	replyPages := []pageResult{
		{page: slack.Page{Messages: []slack.RawMessage{
			raw("1700000010.000000", "U1", "root"),
			raw("1700000012.000000", "U2", "second reply"),
			raw("1700000011.000000", "U2", "first reply"),
			{Timestamp: "1700000013.000000", UserID: "U9", Text: "bot reply", Subtype: "bot_message"},
		}}},
	}

	makeAPI := func() *fakeAPI {
		return &fakeAPI{
			names:           map[string]string{"U1": "Alice", "U2": "Bob"},
			historyPages:    []pageResult{{page: slack.Page{Messages: []slack.RawMessage{root}}}},
			repliesByThread: map[string][]pageResult{"1700000010.000000": replyPages},
		}
	}

	api := makeAPI()
	r := newTestRetriever(api)
	messages, err := r.FetchMessages(context.Background(), "C0001", FetchOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(messages[0].Replies) != 0 {
		t.Fatalf("replies attached without thread inclusion: %+v", messages[0].Replies)
	}
	if len(api.repliesCalls) != 0 {
		t.Fatalf("reply fetch issued without thread inclusion")
	}

	api = makeAPI()
	r = newTestRetriever(api)
	messages, err = r.FetchMessages(context.Background(), "C0001", FetchOptions{IncludeThreads: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	replies := messages[0].Replies
	if len(replies) != 2 {
		t.Fatalf("expected 2 replies (root and bot excluded), got %d", len(replies))
	}
	if replies[0].Text != "first reply" || replies[1].Text != "second reply" {
		t.Fatalf("replies not in chronological order: %+v", replies)
	}
	for _, reply := range replies {
		if !reply.IsReply {
			t.Fatalf("reply not marked as reply: %+v", reply)
		}
	}
}

func TestFetchMessages_ThreadFailureAbortsFetch(t *testing.T) {
	root := slack.RawMessage{Timestamp: "1700000010.000000", UserID: "U1", Text: "root", ReplyCount: 1}
	api := &fakeAPI{
		names:        map[string]string{"U1": "Alice"},
		historyPages: []pageResult{{page: slack.Page{Messages: []slack.RawMessage{root}}}},
		repliesByThread: map[string][]pageResult{
			"1700000010.000000": {{err: fmt.Errorf("thread_not_found")}},
		},
	}
	r := newTestRetriever(api)

	messages, err := r.FetchMessages(context.Background(), "C0001", FetchOptions{IncludeThreads: true})
	if !errors.Is(err, ErrRetrievalFailed) {
		t.Fatalf("expected ErrRetrievalFailed, got %v", err)
	}
	if messages != nil {
		t.Fatalf("expected no partial result, got %d messages", len(messages))
	}
}

func TestFetchMessages_WindowLowerBound(t *testing.T) {
	api := &fakeAPI{historyPages: []pageResult{{}}}
	r := newTestRetriever(api)

	if _, err := r.FetchMessages(context.Background(), "C0001", FetchOptions{Hours: 2}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := slackTimestamp(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	if got := api.historyCalls[0].Oldest; got != want {
		t.Fatalf("unexpected oldest bound: got %s want %s", got, want)
	}
}

func TestFetchMessages_MaxMessagesCap(t *testing.T) {
	page := slack.Page{
		Messages: []slack.RawMessage{raw("1700000001.000000", "U1", "a"), raw("1700000002.000000", "U1", "b")},
		HasMore:  true, NextCursor: "next",
	}
	api := &fakeAPI{
		names:        map[string]string{"U1": "Alice"},
		historyPages: []pageResult{{page: page}, {page: page}, {page: page}},
	}
	r := newTestRetriever(api)

	messages, err := r.FetchMessages(context.Background(), "C0001", FetchOptions{MaxMessages: 4})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(api.historyCalls) != 2 {
		t.Fatalf("expected fetch to stop at the cap after 2 pages, got %d calls", len(api.historyCalls))
	}
	if api.historyCalls[0].Limit != 4 || api.historyCalls[1].Limit != 2 {
		t.Fatalf("page limits not shrunk toward the cap: %+v", api.historyCalls)
	}
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
}

func TestUserNameCache_SingleLookupPerUser(t *testing.T) {
	api := &fakeAPI{
		names: map[string]string{"U1": "Alice"},
		historyPages: []pageResult{{page: slack.Page{Messages: []slack.RawMessage{
			raw("1700000001.000000", "U1", "one"),
			raw("1700000002.000000", "U1", "two"),
			raw("1700000003.000000", "U1", "three"),
		}}}},
	}
	r := newTestRetriever(api)

	if _, err := r.FetchMessages(context.Background(), "C0001", FetchOptions{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if api.nameLookups != 1 {
		t.Fatalf("expected 1 user lookup, got %d", api.nameLookups)
	}
}

func TestUserNameCache_FailureNotCached(t *testing.T) {
	api := &fakeAPI{
		nameErr: fmt.Errorf("user_not_found"),
		historyPages: []pageResult{
			{page: slack.Page{Messages: []slack.RawMessage{raw("1700000001.000000", "U1", "one")}}},
			{page: slack.Page{Messages: []slack.RawMessage{raw("1700000002.000000", "U1", "two")}}},
		},
	}
	r := newTestRetriever(api)

	messages, err := r.FetchMessages(context.Background(), "C0001", FetchOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if messages[0].Author != "U1" {
		t.Fatalf("expected raw ID fallback, got %s", messages[0].Author)
	}

	// The lookup recovers: the earlier failure must not have been cached.
	api.nameErr = nil
	api.names = map[string]string{"U1": "Alice"}
	messages, err = r.FetchMessages(context.Background(), "C0001", FetchOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if messages[0].Author != "Alice" {
		t.Fatalf("expected resolved name after recovery, got %s", messages[0].Author)
	}
	if api.nameLookups != 2 {
		t.Fatalf("expected 2 lookups, got %d", api.nameLookups)
	}
}

func TestPostMessage(t *testing.T) {
	api := &fakeAPI{channels: []slack.Channel{{ID: "C002", Name: "general"}}}
	r := newTestRetriever(api)

	if err := r.PostMessage(context.Background(), "general", "the digest"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if api.posted["C002"] != "the digest" {
		t.Fatalf("message not posted to resolved channel: %+v", api.posted)
	}
}

func TestPostMessage_PlatformFailure(t *testing.T) {
	api := &fakeAPI{postErr: fmt.Errorf("not_in_channel")}
	r := newTestRetriever(api)

	err := r.PostMessage(context.Background(), "C002", "the digest")
	if !errors.Is(err, ErrRetrievalFailed) {
		t.Fatalf("expected ErrRetrievalFailed, got %v", err)
	}
}

func assertAscending(t *testing.T, messages []slack.Message) {
	t.Helper()
	for i := 1; i < len(messages); i++ {
		if messages[i].Timestamp.Before(messages[i-1].Timestamp) {
			t.Fatalf("messages not ascending at index %d", i)
		}
	}
}
