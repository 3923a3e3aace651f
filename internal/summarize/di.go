package summarize

import (
	"github.com/samber/do/v2"

	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/llm"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Summarizer, error) {
		completer := do.MustInvoke[llm.Completer](i)
		return NewSummarizer(completer), nil
	})
}
