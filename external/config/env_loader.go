package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	internalconfig "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/config"
)

type envConfig struct {
	Env              string `env:"ENV" envDefault:"production"`
	Port             int    `env:"PORT" envDefault:"3000"`
	SlackBotToken    string `env:"SLACK_BOT_TOKEN"`
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel   string `env:"ANTHROPIC_MODEL" envDefault:"claude-sonnet-4-20250514"`
	AnthropicBaseURL string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com"`
}

// Load parses and validates the environment. A missing credential is fatal
// for every entrypoint except the CLI connectivity test.
func Load() (*internalconfig.Config, error) {
	cfg, err := LoadRaw()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadRaw parses the environment without validation, so the connectivity
// test command can report each missing credential instead of aborting.
func LoadRaw() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid: %w", err)
	}
	return &internalconfig.Config{
		Env:              raw.Env,
		Port:             raw.Port,
		SlackBotToken:    raw.SlackBotToken,
		AnthropicAPIKey:  raw.AnthropicAPIKey,
		AnthropicModel:   raw.AnthropicModel,
		AnthropicBaseURL: raw.AnthropicBaseURL,
	}, nil
}
