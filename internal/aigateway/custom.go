package aigateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ContentFields custom 服务商响应的探测顺序，取第一个存在的字符串字段
var ContentFields = []string{"content", "text", "response", "output", "result", "completion", "generated_text"}

// CustomProvider 自定义 HTTP 端点
type CustomProvider struct{}

func (CustomProvider) Name() string { return "custom" }

type customRequest struct {
	Model       string  `json:"model,omitempty"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

func (CustomProvider) NewRequest(ctx context.Context, prompt string, s Settings) (*http.Request, error) {
	if s.Endpoint == "" {
		return nil, errors.New("custom provider requires an endpoint")
	}

	var headers map[string]string
	switch {
	case s.APIKey == "":
	case s.APIKeyHeader != "":
		headers = map[string]string{s.APIKeyHeader: s.APIKey}
	default:
		headers = bearer(s.APIKey)
	}

	return newJSONRequest(ctx, s.Endpoint, customRequest{
		Model:       s.Model,
		Prompt:      prompt,
		Temperature: s.Temperature,
		MaxTokens:   s.MaxTokens,
	}, headers)
}

// ExtractContent 依次探测 ContentFields，再尝试 OpenAI 兼容的 choices；
// 顶层为数组时探测第一个元素
func (CustomProvider) ExtractContent(body []byte) (string, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("invalid JSON response: %w", err)
	}
	if arr, ok := root.([]any); ok {
		if len(arr) == 0 {
			return "", nil
		}
		root = arr[0]
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return "", nil
	}

	for _, field := range ContentFields {
		if v, ok := obj[field].(string); ok {
			return v, nil
		}
	}
	return probeChoices(obj), nil
}

// probeChoices choices[0].message.content 或 choices[0].text
func probeChoices(obj map[string]any) string {
	choices, ok := obj["choices"].([]any)
	if !ok || len(choices) == 0 {
		return ""
	}
	first, ok := choices[0].(map[string]any)
	if !ok {
		return ""
	}
	if msg, ok := first["message"].(map[string]any); ok {
		if v, ok := msg["content"].(string); ok {
			return v
		}
	}
	if v, ok := first["text"].(string); ok {
		return v
	}
	return ""
}
