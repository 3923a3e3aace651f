package config

import "fmt"

type Config struct {
	Env              string
	Port             int
	SlackBotToken    string
	AnthropicAPIKey  string
	AnthropicModel   string
	AnthropicBaseURL string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be in 1..65535, got %d", c.Port)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "SLACK_BOT_TOKEN", value: c.SlackBotToken},
		{name: "ANTHROPIC_API_KEY", value: c.AnthropicAPIKey},
		{name: "ANTHROPIC_MODEL", value: c.AnthropicModel},
		{name: "ANTHROPIC_BASE_URL", value: c.AnthropicBaseURL},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
