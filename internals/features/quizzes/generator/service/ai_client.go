package service

import (
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"preschool_backend/internals/configs"
)

var ErrAIDisabled = errors.New("AI_API_KEY is not set")

// NewLLMFromConfig: klien OpenAI-compatible (base URL & model dari ENV)
func NewLLMFromConfig() (llms.Model, error) {
	if configs.AIAPIKey == "" {
		return nil, ErrAIDisabled
	}
	llm, err := openai.New(
		openai.WithToken(configs.AIAPIKey),
		openai.WithBaseURL(configs.AIBaseURL),
		openai.WithModel(configs.AIModel),
		openai.WithResponseFormat(&openai.ResponseFormat{Type: "json_object"}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	return llm, nil
}
