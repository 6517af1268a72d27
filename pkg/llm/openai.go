package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client *openai.Client
	cfg    ModelConfig
}

func NewOpenAIClient(apiKey string, cfg ModelConfig) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	if cfg.Model == "" {
		cfg.Model = string(openai.ChatModelGPT4oMini)
	}
	return &OpenAIClient{
		client: &client,
		cfg:    cfg,
	}
}

func (c *OpenAIClient) ExtractThemes(ctx context.Context, inputs []ThemeInput) (*ExtractionResult, error) {
	payload, err := formatFeedbackPayload(inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt payload: %w", err)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(themeSystemPrompt),
			openai.UserMessage(payload),
		},
		Temperature: openai.Float(c.cfg.Temperature),
		MaxTokens:   openai.Int(c.cfg.MaxTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "theme_extraction",
					Description: openai.String("Themes synthesized from customer feedback"),
					Schema:      extractionSchema(),
					Strict:      openai.Bool(true),
				},
			},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	env, err := decodeExtraction(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return &ExtractionResult{
		Themes:    env.Themes,
		ModelUsed: c.cfg.Model,
	}, nil
}
