package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	llmimpl "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/external/llm"
	slackimpl "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/external/slack"
	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/config"
	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/history"
	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/summarize"
)

var rootCmd = &cobra.Command{
	Use:   "summarizer",
	Short: "Summarize Slack channels with AI",
	Long: `Slack Channel Summarizer - summarize recent channel activity with an LLM.

Requires SLACK_BOT_TOKEN and ANTHROPIC_API_KEY environment variables
(a .env file in the working directory is picked up automatically).`,
	SilenceUsage: true,
}

func main() {
	// Load .env if present (for SLACK_BOT_TOKEN / ANTHROPIC_API_KEY).
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	slackimpl.RegisterDI(injector)
	llmimpl.RegisterDI(injector)
	history.RegisterDI(injector)
	summarize.RegisterDI(injector)

	return injector
}
