package aigateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const ollamaDefaultHost = "http://localhost:11434"

// OllamaProvider 本地 Ollama，无认证，Endpoint 为服务地址
type OllamaProvider struct{}

func (OllamaProvider) Name() string { return "ollama" }

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

func (OllamaProvider) NewRequest(ctx context.Context, prompt string, s Settings) (*http.Request, error) {
	url := strings.TrimRight(endpointOr(s, ollamaDefaultHost), "/")
	if !strings.HasSuffix(url, "/api/generate") {
		url += "/api/generate"
	}

	options := map[string]any{"temperature": s.Temperature}
	if s.MaxTokens > 0 {
		options["num_predict"] = s.MaxTokens
	}
	return newJSONRequest(ctx, url, ollamaRequest{
		Model:   s.Model,
		Prompt:  prompt,
		Stream:  false,
		Options: options,
	}, nil)
}

func (OllamaProvider) ExtractContent(body []byte) (string, error) {
	var r struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("invalid JSON response: %w", err)
	}
	return r.Response, nil
}
