package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/llm"
	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/slack"
)

// ErrGenerationFailed means the model call errored or returned no usable
// content.
var ErrGenerationFailed = errors.New("summary generation failed")

// Style selects how much detail the generated prose carries.
type Style string

const (
	StyleDetailed Style = "detailed"
	StyleBrief    Style = "brief"
)

// ParseStyle accepts exactly "detailed" and "brief".
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleDetailed, StyleBrief:
		return Style(s), nil
	}
	return "", fmt.Errorf("invalid style %q (want detailed or brief)", s)
}

// Summarizer renders a message list into a transcript, obtains generated
// prose from the model, and prepends a deterministic statistics header.
type Summarizer struct {
	llm llm.Completer
}

func NewSummarizer(completer llm.Completer) *Summarizer {
	return &Summarizer{llm: completer}
}

// Summarize produces the digest for one channel. An empty message list
// short-circuits to a fixed sentence without calling the model.
func (s *Summarizer) Summarize(ctx context.Context, messages []slack.Message, channelName string, style Style) (string, error) {
	if len(messages) == 0 {
		return fmt.Sprintf("No messages found in #%s for the specified time period.", channelName), nil
	}

	prompt := buildPrompt(buildTranscript(messages), channelName, style)

	summary, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrGenerationFailed, err)
	}
	if strings.TrimSpace(summary) == "" {
		return "", fmt.Errorf("%w: model returned no content", ErrGenerationFailed)
	}

	return buildHeader(messages, channelName) + "\n" + summary, nil
}
