package llm

import "context"

// Completer is a single-turn text generation service.
type Completer interface {
	// Complete sends one prompt and returns the generated text.
	Complete(ctx context.Context, prompt string) (string, error)
	// Ping verifies the service is reachable with the configured credentials.
	Ping(ctx context.Context) error
}
