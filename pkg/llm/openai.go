package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/rclarke009/news-sentiment-comparison/internal/config"
)

type OpenAIClient struct {
	client      *openai.Client
	model       openai.ChatModel
	modelName   string
	temperature float64
	maxTokens   int64
}

func NewOpenAIClient(cfg config.LLMConfig) *OpenAIClient {
	client := openai.NewClient(
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	return &OpenAIClient{
		client:      &client,
		model:       openai.ChatModel(cfg.OpenAIModel),
		modelName:   cfg.OpenAIModel,
		temperature: cfg.Temperature,
		maxTokens:   int64(cfg.MaxTokens),
	}
}

func (c *OpenAIClient) ModelName() string {
	return c.modelName
}

func (c *OpenAIClient) ScoreHeadline(ctx context.Context, title, description string) (float64, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildUpliftPrompt(title, description)),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
	})

	if err != nil {
		return 0, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("no response from openai")
	}

	return ParseScore(resp.Choices[0].Message.Content), nil
}
