package slack

import (
	"github.com/samber/do/v2"

	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/config"
	slackpkg "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/slack"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (slackpkg.API, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewClient(c.SlackBotToken), nil
	})
}
