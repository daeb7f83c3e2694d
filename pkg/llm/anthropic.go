package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/rclarke009/news-sentiment-comparison/internal/config"
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
	maxTokens int64
}

func NewAnthropicClient(cfg config.LLMConfig) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.Model(cfg.AnthropicModel),
		modelName: cfg.AnthropicModel,
		maxTokens: int64(cfg.MaxTokens),
	}
}

func (c *AnthropicClient) ModelName() string {
	return c.modelName
}

func (c *AnthropicClient) ScoreHeadline(ctx context.Context, title, description string) (float64, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildUpliftPrompt(title, description))),
		},
	})

	if err != nil {
		return 0, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return 0, fmt.Errorf("no response from anthropic")
	}

	return ParseScore(resp.Content[0].Text), nil
}
