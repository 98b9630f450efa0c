package aigateway

import (
	"context"
	"net/http"
)

const (
	openAIEndpoint  = "https://api.openai.com/v1/chat/completions"
	mistralEndpoint = "https://api.mistral.ai/v1/chat/completions"
)

// OpenAIProvider Chat Completions，Bearer 认证
type OpenAIProvider struct{}

func (OpenAIProvider) Name() string { return "openai" }

func (OpenAIProvider) NewRequest(ctx context.Context, prompt string, s Settings) (*http.Request, error) {
	return newJSONRequest(ctx, endpointOr(s, openAIEndpoint), newChatRequest(prompt, s), bearer(s.APIKey))
}

func (OpenAIProvider) ExtractContent(body []byte) (string, error) {
	return extractChatContent(body)
}

// MistralProvider 与 OpenAI 格式兼容
type MistralProvider struct{}

func (MistralProvider) Name() string { return "mistral" }

func (MistralProvider) NewRequest(ctx context.Context, prompt string, s Settings) (*http.Request, error) {
	return newJSONRequest(ctx, endpointOr(s, mistralEndpoint), newChatRequest(prompt, s), bearer(s.APIKey))
}

func (MistralProvider) ExtractContent(body []byte) (string, error) {
	return extractChatContent(body)
}
