package services

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/option"

	"alfredoptarigan/talentscout/internal/config"
)

type GenerationRequest struct {
	SystemPrompt string
	Prompt       string
	Temperature  float32
	MaxTokens    int
}

// LLMService is the single call made to a language model. Any error means
// the caller falls back; there is no retry.
type LLMService interface {
	GenerateText(ctx context.Context, req GenerationRequest) (string, error)
	Provider() string
}

func NewLLMService(ctx context.Context, cfg config.ModelConfig) (LLMService, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	case config.ProviderOpenAI:
		var opts []option.RequestOption
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
		}
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Provider)
	}
}
