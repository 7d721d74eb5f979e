// Package llm wraps the language-model call behind a single generator.
package llm

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/bedrock"

	"github.com/leo-sizaret/youtube-summary-slack-bot/internal/config"
)

const (
	// DefaultAnthropicModel is the Claude model used for summaries.
	DefaultAnthropicModel = "claude-opus-4-20250514"

	// DefaultBedrockModel is the model used when running against AWS Bedrock.
	DefaultBedrockModel = "anthropic.claude-3-5-sonnet-20240620-v1:0"

	// MaxTokens caps the summary length.
	MaxTokens = 1024
)

// Model wraps a langchaingo LLM for summary generation.
type Model struct {
	llm       llms.Model
	modelName string
}

// NewModel creates an LLM model based on configuration.
func NewModel(ctx context.Context, cfg config.Config) (*Model, error) {
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err := anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(DefaultAnthropicModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}
		return &Model{llm: model, modelName: DefaultAnthropicModel}, nil

	case config.ProviderBedrock:
		awscfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := bedrockruntime.NewFromConfig(awscfg)
		model, err := bedrock.New(
			bedrock.WithClient(client),
			bedrock.WithModel(DefaultBedrockModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create bedrock model: %w", err)
		}
		return &Model{llm: model, modelName: DefaultBedrockModel}, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}

// Summarize generates a summary for the assembled prompt.
func (m *Model) Summarize(ctx context.Context, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, m.llm, prompt,
		llms.WithMaxTokens(MaxTokens),
	)
	if err != nil {
		return "", wrapFatalError(fmt.Errorf("generate: %w", err))
	}
	return response, nil
}

// Model returns the LLM model name.
func (m *Model) Model() string {
	return m.modelName
}
