package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client *anthropic.Client
	cfg    ModelConfig
}

func NewAnthropicClient(apiKey string, cfg ModelConfig) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	if cfg.Model == "" {
		cfg.Model = string(anthropic.ModelClaudeHaiku4_5)
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2048
	}
	return &AnthropicClient{
		client: &client,
		cfg:    cfg,
	}
}

func (c *AnthropicClient) ExtractThemes(ctx context.Context, inputs []ThemeInput) (*ExtractionResult, error) {
	payload, err := formatFeedbackPayload(inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt payload: %w", err)
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: anthropic.Float(c.cfg.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: themeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(payload)),
			anthropic.NewUserMessage(anthropic.NewTextBlock(schemaInstruction)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	env, err := decodeExtraction(resp.Content[0].Text)
	if err != nil {
		return nil, err
	}

	return &ExtractionResult{
		Themes:    env.Themes,
		ModelUsed: c.cfg.Model,
	}, nil
}
