package services

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/antonvlasov/hookah-mix-helper/internal/config"
	apperrors "github.com/antonvlasov/hookah-mix-helper/internal/errors"
)

// Completer is a single blocking call to a text-generation endpoint.
// The mix service depends on this instead of a concrete client so tests can
// substitute a canned reply.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error)
	DefaultTemperature() float32
}

// LLMService talks to an OpenAI-compatible chat completion endpoint.
type LLMService struct {
	client             *openai.Client
	model              string
	maxTokens          int
	defaultTemperature float32
}

func NewLLMService(cfg config.LLMConfig) *LLMService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.APIURL != "" {
		clientConfig.BaseURL = cfg.APIURL
	}

	return &LLMService{
		client:             openai.NewClientWithConfig(clientConfig),
		model:              cfg.Model,
		maxTokens:          cfg.MaxTokens,
		defaultTemperature: cfg.Temperature,
	}
}

// Complete sends one chat completion request and returns the raw reply text.
// No retry or backoff happens here; transport failures surface as
// UPSTREAM_UNAVAILABLE and the caller decides what to do.
func (s *LLMService) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			MaxTokens:   s.maxTokens,
			Temperature: temperature,
		},
	)
	if err != nil {
		return "", apperrors.NewUpstreamUnavailable(err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.NewUpstreamUnavailable(nil)
	}

	return resp.Choices[0].Message.Content, nil
}

func (s *LLMService) DefaultTemperature() float32 {
	return s.defaultTemperature
}
