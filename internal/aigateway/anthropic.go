package aigateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	anthropicEndpoint = "https://api.anthropic.com/v1/complete"
	anthropicVersion  = "2023-06-01"
	// 旧版 Text Completions 要求的 max_tokens_to_sample
	anthropicDefaultMaxTokens = 1024
)

// AnthropicProvider Text Completions，x-api-key 认证
type AnthropicProvider struct{}

func (AnthropicProvider) Name() string { return "anthropic" }

type anthropicRequest struct {
	Model             string  `json:"model"`
	Prompt            string  `json:"prompt"`
	MaxTokensToSample int     `json:"max_tokens_to_sample"`
	Temperature       float64 `json:"temperature"`
}

func (AnthropicProvider) NewRequest(ctx context.Context, prompt string, s Settings) (*http.Request, error) {
	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}
	payload := anthropicRequest{
		Model:             s.Model,
		Prompt:            "\n\nHuman: " + prompt + "\n\nAssistant:",
		MaxTokensToSample: maxTokens,
		Temperature:       s.Temperature,
	}
	return newJSONRequest(ctx, endpointOr(s, anthropicEndpoint), payload, map[string]string{
		"x-api-key":         s.APIKey,
		"anthropic-version": anthropicVersion,
	})
}

func (AnthropicProvider) ExtractContent(body []byte) (string, error) {
	var r struct {
		Completion string `json:"completion"`
	}
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("invalid JSON response: %w", err)
	}
	return r.Completion, nil
}
