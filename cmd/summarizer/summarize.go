package main

import (
	"fmt"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	configloader "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/external/config"
	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/history"
	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/summarize"
)

var (
	summarizeHours   int
	summarizeStyle   string
	summarizeThreads bool
	noThreads        bool
	postSummary      bool
	postTo           string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <channel>",
	Short: "Summarize messages from a Slack channel",
	Long: `Summarize messages from a Slack channel.

The channel argument is the channel name, with or without a leading '#'.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().IntVar(&summarizeHours, "hours", 24, "hours of history to summarize")
	summarizeCmd.Flags().StringVar(&summarizeStyle, "style", "detailed", "summary style: detailed or brief")
	summarizeCmd.Flags().BoolVar(&summarizeThreads, "threads", false, "include thread replies for full context")
	summarizeCmd.Flags().BoolVar(&noThreads, "no-threads", false, "exclude thread replies")
	summarizeCmd.Flags().BoolVar(&postSummary, "post", false, "post the summary to Slack")
	summarizeCmd.Flags().StringVar(&postTo, "post-to", "", "channel to post the summary to (default: same channel)")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	style, err := summarize.ParseStyle(summarizeStyle)
	if err != nil {
		return err
	}

	cfg, err := configloader.Load()
	if err != nil {
		return err
	}
	injector := setupDI(cfg)

	retriever, err := do.Invoke[*history.Retriever](injector)
	if err != nil {
		return err
	}
	summarizer, err := do.Invoke[*summarize.Summarizer](injector)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	channelName := strings.TrimPrefix(args[0], "#")
	includeThreads := summarizeThreads && !noThreads

	if includeThreads {
		fmt.Printf("Fetching messages and threads from #%s...\n", channelName)
	} else {
		fmt.Printf("Fetching messages from #%s...\n", channelName)
	}
	messages, err := retriever.FetchMessages(ctx, channelName, history.FetchOptions{
		Hours:          summarizeHours,
		IncludeThreads: includeThreads,
	})
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		fmt.Printf("No messages found in #%s in the last %d hours.\n", channelName, summarizeHours)
		return nil
	}

	totalReplies := 0
	for _, msg := range messages {
		totalReplies += len(msg.Replies)
	}
	if includeThreads && totalReplies > 0 {
		fmt.Printf("Found %d messages with %d thread replies\n", len(messages), totalReplies)
	} else {
		fmt.Printf("Found %d messages\n", len(messages))
	}

	fmt.Println("Generating summary with Claude...")
	summary, err := summarizer.Summarize(ctx, messages, channelName, style)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(summary)

	if postSummary {
		target := postTo
		if target == "" {
			target = channelName
		}
		if err := retriever.PostMessage(ctx, target, summary); err != nil {
			return err
		}
		fmt.Printf("Summary posted to #%s\n", strings.TrimPrefix(target, "#"))
	}

	return nil
}
