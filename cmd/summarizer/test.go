package main

import (
	"fmt"

	"github.com/spf13/cobra"

	configloader "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/external/config"
	llmimpl "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/external/llm"
	slackimpl "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/external/slack"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connectivity to Slack and Anthropic",
	Long: `Check both external services and report pass/fail per service.

A failing service does not stop the remaining checks.`,
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	// Raw load: a missing credential should show as a failed check for that
	// service, not abort the whole command.
	cfg, err := configloader.LoadRaw()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	fmt.Println("\nTesting connections...")
	fmt.Println()

	if cfg.SlackBotToken == "" {
		fmt.Println("✗ Slack failed: SLACK_BOT_TOKEN is not set")
	} else {
		api := slackimpl.NewClient(cfg.SlackBotToken)
		if channels, err := api.ListChannels(ctx); err != nil {
			fmt.Printf("✗ Slack failed: %s\n", err)
		} else {
			fmt.Printf("✓ Slack connected - %d channels accessible\n", len(channels))
		}
	}

	if cfg.AnthropicAPIKey == "" {
		fmt.Println("✗ Anthropic failed: ANTHROPIC_API_KEY is not set")
	} else {
		completer := llmimpl.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, cfg.AnthropicModel)
		if err := completer.Ping(ctx); err != nil {
			fmt.Printf("✗ Anthropic failed: %s\n", err)
		} else {
			fmt.Println("✓ Anthropic API connected")
		}
	}

	fmt.Println()
	return nil
}
