package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/server"
)

// HTTPResponder posts delayed slash-command responses as JSON to the
// response URL Slack supplied with the invocation.
type HTTPResponder struct {
	client *http.Client
}

func NewHTTPResponder() server.Responder {
	return &HTTPResponder{
		client: &http.Client{},
	}
}

func (s *HTTPResponder) Respond(ctx context.Context, url string, msg server.Response) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if !isHTTPSuccessStatus(resp.StatusCode) {
		return fmt.Errorf("response url returned status %d", resp.StatusCode)
	}
	return nil
}

func isHTTPSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
