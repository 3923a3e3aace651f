package summarize

import (
	"fmt"
	"strings"

	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/slack"
)

const (
	transcriptTimeLayout = "15:04"
	headerDateLayout     = "January 02, 2006"
	headerRule           = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
)

// buildTranscript renders messages one per line, with thread replies
// indented beneath their parent. Input order is preserved.
func buildTranscript(messages []slack.Message) string {
	var lines []string
	for _, msg := range messages {
		line := fmt.Sprintf("[%s] %s: %s", msg.Timestamp.Format(transcriptTimeLayout), msg.Author, msg.Text)
		if msg.ReplyCount > 0 {
			line += fmt.Sprintf(" [THREAD START - %d replies]", msg.ReplyCount)
		}
		lines = append(lines, line)

		for _, reply := range msg.Replies {
			lines = append(lines, fmt.Sprintf("    └─ [%s] %s: %s",
				reply.Timestamp.Format(transcriptTimeLayout), reply.Author, reply.Text))
		}
		if len(msg.Replies) > 0 {
			lines = append(lines, "    [THREAD END]")
		}
	}
	return strings.Join(lines, "\n")
}

const detailedStyleInstruction = `Provide a detailed summary with:
- Key discussions and topics covered
- Important decisions made
- Action items or tasks mentioned
- Notable announcements or updates
- Any unresolved questions or debates`

const briefStyleInstruction = "Provide a brief 2-3 sentence summary."

func buildPrompt(transcript, channelName string, style Style) string {
	instruction := detailedStyleInstruction
	if style == StyleBrief {
		instruction = briefStyleInstruction
	}

	return fmt.Sprintf(`Summarize the following Slack conversation from the #%s channel.

%s

Format the summary using Slack-compatible formatting:
- Use *bold* for emphasis
- Use bullet points for lists
- Keep it concise but comprehensive
- Group related topics together
- Highlight any @mentions of people or action items

Here are the messages:

%s

Provide the summary now:`, channelName, instruction, transcript)
}

// buildHeader computes the statistics block independently of the model. The
// caller guarantees messages is non-empty and chronological.
func buildHeader(messages []slack.Message, channelName string) string {
	start := messages[0].Timestamp
	end := messages[len(messages)-1].Timestamp

	participants := map[string]struct{}{}
	threads := 0
	totalReplies := 0
	for _, msg := range messages {
		participants[msg.Author] = struct{}{}
		for _, reply := range msg.Replies {
			participants[reply.Author] = struct{}{}
		}
		if len(msg.Replies) > 0 {
			threads++
			totalReplies += len(msg.Replies)
		}
	}

	stats := fmt.Sprintf("%d messages | %d participants", len(messages), len(participants))
	if totalReplies > 0 {
		stats += fmt.Sprintf(" | %d threads (%d replies)", threads, totalReplies)
	}

	timeRange := fmt.Sprintf("%s - %s", start.Format(transcriptTimeLayout), end.Format(transcriptTimeLayout))

	return fmt.Sprintf("*#%s Summary* - %s\n_%s | %s_\n%s\n",
		channelName, start.Format(headerDateLayout), timeRange, stats, headerRule)
}
