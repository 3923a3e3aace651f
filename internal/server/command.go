package server

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	defaultDays = 30
	maxDays     = 30
)

// ErrNoChannel means neither the command text nor the invoking request
// identified a channel.
var ErrNoChannel = errors.New("could not determine channel")

// DaysRangeError reports a requested window beyond the hard ceiling. It is
// raised synchronously, before any background work starts.
type DaysRangeError struct {
	Days int
}

func (e *DaysRangeError) Error() string {
	return fmt.Sprintf("maximum timeframe is %d days, requested %d", maxDays, e.Days)
}

// Command is a parsed slash-command invocation.
type Command struct {
	Channel        string
	Days           int
	IncludeThreads bool
}

var daysToken = regexp.MustCompile(`^(\d+)d$`)

// ParseCommand parses the free-text argument string token by token. The
// grammar recognizes three shapes: a channel token ("#name" or the
// "<#C123|name>" mention form, first token only), the literal "no-threads",
// and "<digits>d". Unknown tokens are ignored. Defaults: the invoking
// channel, 30 days, threads included.
func ParseCommand(text, fallbackName, fallbackID string) (Command, error) {
	cmd := Command{
		Days:           defaultDays,
		IncludeThreads: true,
	}

	tokens := strings.Fields(text)

	if len(tokens) > 0 && isChannelToken(tokens[0]) {
		cmd.Channel = parseChannelToken(tokens[0])
		tokens = tokens[1:]
	} else {
		cmd.Channel = fallbackName
		if cmd.Channel == "" {
			cmd.Channel = fallbackID
		}
		if cmd.Channel == "" {
			return Command{}, ErrNoChannel
		}
	}

	for _, token := range tokens {
		token = strings.ToLower(token)
		if token == "no-threads" {
			cmd.IncludeThreads = false
			continue
		}
		if m := daysToken.FindStringSubmatch(token); m != nil {
			days, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if days > maxDays {
				return Command{}, &DaysRangeError{Days: days}
			}
			cmd.Days = days
		}
	}

	return cmd, nil
}

func isChannelToken(token string) bool {
	return strings.HasPrefix(token, "#") || strings.HasPrefix(token, "<#")
}

// parseChannelToken extracts a usable channel reference. The mention form
// carries both ID and name; the name is preferred so user-facing messages
// stay readable, with the ID as fallback.
func parseChannelToken(token string) string {
	if strings.HasPrefix(token, "<#") {
		inner := strings.TrimSuffix(strings.TrimPrefix(token, "<#"), ">")
		id, name, ok := strings.Cut(inner, "|")
		if ok && name != "" {
			return name
		}
		return id
	}
	return strings.TrimPrefix(token, "#")
}
