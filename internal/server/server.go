package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/history"
	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/slack"
	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/summarize"
)

const (
	ResponseEphemeral = "ephemeral"
	ResponseInChannel = "in_channel"
)

// Response is the payload Slack expects, both for the synchronous
// acknowledgment and for the delayed response_url delivery.
type Response struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// Responder delivers a delayed Response to a caller-supplied callback URL.
type Responder interface {
	Respond(ctx context.Context, url string, msg Response) error
}

// HistoryFetcher is the slice of the Retriever the server needs.
type HistoryFetcher interface {
	FetchMessages(ctx context.Context, channel string, opts history.FetchOptions) ([]slack.Message, error)
}

// DigestComposer is the slice of the Summarizer the server needs.
type DigestComposer interface {
	Summarize(ctx context.Context, messages []slack.Message, channelName string, style summarize.Style) (string, error)
}

// Server handles the slash-command webhook. The handler itself only parses
// and acknowledges; the pipeline runs on a detached goroutine whose sole
// side effect is one callback delivery.
type Server struct {
	fetcher   HistoryFetcher
	composer  DigestComposer
	responder Responder
}

func NewServer(fetcher HistoryFetcher, composer DigestComposer, responder Responder) *Server {
	return &Server{
		fetcher:   fetcher,
		composer:  composer,
		responder: responder,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /slack/summarize", s.handleSummarize)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleSummarize acknowledges within Slack's deadline and defers the real
// work. Grammar violations are rejected here, before any background work.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}
	text := r.FormValue("text")
	responseURL := r.FormValue("response_url")

	cmd, err := ParseCommand(text, r.FormValue("channel_name"), r.FormValue("channel_id"))
	if err != nil {
		var rangeErr *DaysRangeError
		switch {
		case errors.As(err, &rangeErr):
			writeJSON(w, Response{
				ResponseType: ResponseEphemeral,
				Text:         fmt.Sprintf("Error: Maximum timeframe is %d days. You requested %d days.", maxDays, rangeErr.Days),
			})
		case errors.Is(err, ErrNoChannel):
			writeJSON(w, Response{
				ResponseType: ResponseEphemeral,
				Text:         "Error: Could not determine channel. Please specify a channel explicitly.",
			})
		default:
			writeJSON(w, Response{
				ResponseType: ResponseEphemeral,
				Text:         fmt.Sprintf("Error: %s", err),
			})
		}
		return
	}

	slog.Info("slash command accepted", "channel", cmd.Channel, "days", cmd.Days, "threads", cmd.IncludeThreads)
	go s.runSummary(cmd, responseURL)

	writeJSON(w, Response{
		ResponseType: ResponseEphemeral,
		Text: fmt.Sprintf("Generating summary for #%s (last %d day%s)... This may take a moment.",
			cmd.Channel, cmd.Days, plural(cmd.Days)),
	})
}

// runSummary executes the full pipeline and posts the digest or an error
// message to the response URL.
func (s *Server) runSummary(cmd Command, responseURL string) {
	ctx := context.Background()

	messages, err := s.fetcher.FetchMessages(ctx, cmd.Channel, history.FetchOptions{
		Hours:          cmd.Days * 24,
		IncludeThreads: cmd.IncludeThreads,
	})
	if err != nil {
		s.deliverError(ctx, responseURL, cmd, err)
		return
	}

	var result string
	if len(messages) == 0 {
		result = fmt.Sprintf("No messages found in #%s in the last %d day%s.", cmd.Channel, cmd.Days, plural(cmd.Days))
	} else {
		result, err = s.composer.Summarize(ctx, messages, cmd.Channel, summarize.StyleDetailed)
		if err != nil {
			s.deliverError(ctx, responseURL, cmd, err)
			return
		}
	}

	if err := s.responder.Respond(ctx, responseURL, Response{ResponseType: ResponseInChannel, Text: result}); err != nil {
		slog.Error("failed to deliver summary", "channel", cmd.Channel, "error", err)
		return
	}
	slog.Info("summary delivered", "channel", cmd.Channel, "messages", len(messages))
}

func (s *Server) deliverError(ctx context.Context, responseURL string, cmd Command, cause error) {
	slog.Error("summary pipeline failed", "channel", cmd.Channel, "error", cause)
	msg := Response{
		ResponseType: ResponseEphemeral,
		Text:         fmt.Sprintf("Error generating summary: %s", cause),
	}
	if err := s.responder.Respond(ctx, responseURL, msg); err != nil {
		slog.Error("failed to deliver error message", "channel", cmd.Channel, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
