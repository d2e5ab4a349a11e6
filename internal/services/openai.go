package services

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAIService struct {
	client openai.Client
	model  string
}

// NewOpenAIService makes exactly one request per call; the client's built-in
// retries are switched off. Extra options are applied last.
func NewOpenAIService(apiKey, model string, opts ...option.RequestOption) LLMService {
	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &openAIService{
		client: openai.NewClient(clientOpts...),
		model:  model,
	}
}

func (o *openAIService) Provider() string {
	return "openai"
}

// GenerateText implements LLMService.
func (o *openAIService) GenerateText(ctx context.Context, req GenerationRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.model),
		Messages:    messages,
		Temperature: openai.Float(float64(req.Temperature)),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI API")
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}
