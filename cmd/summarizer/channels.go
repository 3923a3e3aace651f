package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	configloader "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/external/config"
	slackimpl "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/external/slack"
)

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List channels the bot can access",
	RunE:  runChannels,
}

func init() {
	rootCmd.AddCommand(channelsCmd)
}

func runChannels(cmd *cobra.Command, args []string) error {
	cfg, err := configloader.Load()
	if err != nil {
		return err
	}

	api := slackimpl.NewClient(cfg.SlackBotToken)
	channels, err := api.ListChannels(cmd.Context())
	if err != nil {
		return err
	}

	if len(channels) == 0 {
		fmt.Println("No channels found. Make sure the bot is invited to channels.")
		return nil
	}

	sort.Slice(channels, func(i, j int) bool { return channels[i].Name < channels[j].Name })

	fmt.Println("\nAvailable Channels:")
	fmt.Println()
	for _, ch := range channels {
		fmt.Printf("  #%s\n", ch.Name)
	}
	fmt.Printf("\n%d channels available\n", len(channels))
	return nil
}
