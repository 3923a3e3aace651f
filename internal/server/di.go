package server

import (
	"github.com/samber/do/v2"

	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/history"
	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/summarize"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Server, error) {
		retriever := do.MustInvoke[*history.Retriever](i)
		summarizer := do.MustInvoke[*summarize.Summarizer](i)
		responder := do.MustInvoke[Responder](i)
		return NewServer(retriever, summarizer, responder), nil
	})
}
