package llm

import (
	"github.com/samber/do/v2"

	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/config"
	llmpkg "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/llm"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (llmpkg.Completer, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewClient(c.AnthropicAPIKey, c.AnthropicBaseURL, c.AnthropicModel), nil
	})
}
