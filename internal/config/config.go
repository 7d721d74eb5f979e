// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Provider selects the language-model backend.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderBedrock   Provider = "bedrock"
)

// Config holds all configuration values. It is constructed once at startup
// and passed by reference; nothing mutates it afterwards.
type Config struct {
	// Language model
	AnthropicAPIKey string
	LLMProvider     Provider

	// Slack
	SlackBotToken string
	SlackAppToken string

	// Forward proxy for transcript fetching (stable outbound address,
	// avoids provider-side per-IP rate limiting)
	ProxyUsername string
	ProxyPassword string
	ProxyDomain   string
	ProxyPort     string

	// Prompting
	PromptName    string
	TranscriptCap int

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first if present.
func Load() Config {
	// Ignore a missing .env; settings may come from the environment directly.
	_ = godotenv.Load()

	return Config{
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		LLMProvider:     Provider(getEnv("YTSUM_LLM_PROVIDER", string(ProviderAnthropic))),

		SlackBotToken: os.Getenv("SLACK_BOT_TOKEN"),
		SlackAppToken: os.Getenv("SLACK_APP_TOKEN"),

		ProxyUsername: os.Getenv("PROXY_USERNAME"),
		ProxyPassword: os.Getenv("PROXY_PASSWORD"),
		ProxyDomain:   os.Getenv("PROXY_DOMAIN"),
		ProxyPort:     os.Getenv("PROXY_PORT"),

		PromptName:    getEnv("YTSUM_PROMPT", "summary"),
		TranscriptCap: getEnvAsInt("YTSUM_TRANSCRIPT_CAP", 0),

		LogFile:  getEnv("YTSUM_LOG_FILE", ""),
		LogLevel: parseLogLevel(getEnv("YTSUM_LOG_LEVEL", "INFO")),
	}
}

// Validate reports configuration errors that would prevent the bot from
// starting at all. Proxy settings are optional: without them transcript
// requests go out directly.
func (c Config) Validate() error {
	var missing []string
	if c.SlackBotToken == "" {
		missing = append(missing, "SLACK_BOT_TOKEN")
	}
	if c.SlackAppToken == "" {
		missing = append(missing, "SLACK_APP_TOKEN")
	}
	if c.LLMProvider == ProviderAnthropic && c.AnthropicAPIKey == "" {
		missing = append(missing, "ANTHROPIC_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	switch c.LLMProvider {
	case ProviderAnthropic, ProviderBedrock:
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.LLMProvider)
	}
	return nil
}

// ProxyURL renders the forward-proxy address for the given scheme, or ""
// when no proxy is configured.
func (c Config) ProxyURL(scheme string) string {
	if c.ProxyDomain == "" {
		return ""
	}
	if c.ProxyUsername != "" {
		return fmt.Sprintf("%s://%s:%s@%s:%s", scheme, c.ProxyUsername, c.ProxyPassword, c.ProxyDomain, c.ProxyPort)
	}
	return fmt.Sprintf("%s://%s:%s", scheme, c.ProxyDomain, c.ProxyPort)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
