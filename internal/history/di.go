package history

import (
	"github.com/samber/do/v2"

	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/slack"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Retriever, error) {
		api := do.MustInvoke[slack.API](i)
		return NewRetriever(api), nil
	})
}
