package responder

import (
	"github.com/samber/do/v2"

	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/server"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (server.Responder, error) {
		return NewHTTPResponder(), nil
	})
}
