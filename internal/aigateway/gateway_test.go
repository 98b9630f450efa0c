package aigateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captured 记录上游收到的请求
type captured struct {
	path    string
	headers http.Header
	body    map[string]any
}

func newUpstream(t *testing.T, status int, reply string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.headers = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got.body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestGenerateProviders(t *testing.T) {
	tests := []struct {
		name       string
		provider   string
		reply      string
		endpoint   func(base string) string
		wantPath   string
		wantHeader [2]string
		checkBody  func(t *testing.T, body map[string]any)
	}{
		{
			name:       "openai",
			provider:   "openai",
			reply:      `{"choices":[{"message":{"role":"assistant","content":"Xin chào"}}]}`,
			endpoint:   func(base string) string { return base + "/v1/chat/completions" },
			wantPath:   "/v1/chat/completions",
			wantHeader: [2]string{"Authorization", "Bearer sk-test"},
			checkBody: func(t *testing.T, body map[string]any) {
				msgs := body["messages"].([]any)
				assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
				assert.Equal(t, "gpt-4o-mini", body["model"])
			},
		},
		{
			name:       "mistral",
			provider:   "Mistral",
			reply:      `{"choices":[{"message":{"content":"Xin chào"}}]}`,
			endpoint:   func(base string) string { return base + "/v1/chat/completions" },
			wantPath:   "/v1/chat/completions",
			wantHeader: [2]string{"Authorization", "Bearer sk-test"},
		},
		{
			name:       "anthropic",
			provider:   "anthropic",
			reply:      `{"completion":"Xin chào","stop_reason":"stop_sequence"}`,
			endpoint:   func(base string) string { return base + "/v1/complete" },
			wantPath:   "/v1/complete",
			wantHeader: [2]string{"x-api-key", "sk-test"},
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["prompt"], "\n\nHuman: viết lại")
				assert.EqualValues(t, 256, body["max_tokens_to_sample"])
			},
		},
		{
			name:     "ollama",
			provider: "ollama",
			reply:    `{"model":"llama3","response":"Xin chào","done":true}`,
			endpoint: func(base string) string { return base + "/" },
			wantPath: "/api/generate",
			checkBody: func(t *testing.T, body map[string]any) {
				assert.Equal(t, false, body["stream"])
				assert.Equal(t, "viết lại", body["prompt"])
			},
		},
		{
			name:       "custom with header key",
			provider:   "custom",
			reply:      `{"output":"Xin chào"}`,
			endpoint:   func(base string) string { return base + "/generate" },
			wantPath:   "/generate",
			wantHeader: [2]string{"X-Api-Token", "sk-test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := newUpstream(t, http.StatusOK, tt.reply)
			s := Settings{
				Provider:    tt.provider,
				APIKey:      "sk-test",
				Model:       "gpt-4o-mini",
				Endpoint:    tt.endpoint(srv.URL),
				Temperature: 0.5,
				MaxTokens:   256,
			}
			if tt.provider == "custom" {
				s.APIKeyHeader = "X-Api-Token"
			}

			res := New().Generate(context.Background(), "viết lại", s)

			require.True(t, res.Success, res.Error)
			assert.NotEmpty(t, res.Content)
			assert.Equal(t, tt.wantPath, got.path)
			if tt.wantHeader[0] != "" {
				assert.Equal(t, tt.wantHeader[1], got.headers.Get(tt.wantHeader[0]))
			}
			if tt.checkBody != nil {
				tt.checkBody(t, got.body)
			}
		})
	}
}

func TestGenerateCustomProbeOrder(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"content 优先", `{"text":"b","content":"a"}`, "a"},
		{"text 次之", `{"response":"c","text":"b"}`, "b"},
		{"generated_text 数组", `[{"generated_text":"g"}]`, "g"},
		{"非字符串字段跳过", `{"content":{"x":1},"result":"r"}`, "r"},
		{"回退到 choices", `{"choices":[{"text":"legacy"}]}`, "legacy"},
		{"全部缺失", `{"id":"x"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newUpstream(t, http.StatusOK, tt.reply)
			res := New().Generate(context.Background(), "p", Settings{Provider: "custom", Endpoint: srv.URL})

			assert.True(t, res.Success)
			assert.Equal(t, tt.want, res.Content)
			assert.Empty(t, res.Error)
		})
	}
}

func TestGenerateCustomBearerFallback(t *testing.T) {
	srv, got := newUpstream(t, http.StatusOK, `{"content":"ok"}`)
	res := New().Generate(context.Background(), "p", Settings{Provider: "custom", Endpoint: srv.URL, APIKey: "k"})

	require.True(t, res.Success)
	assert.Equal(t, "Bearer k", got.headers.Get("Authorization"))
}

func TestGenerateFailures(t *testing.T) {
	t.Run("non-2xx 返回原始响应体", func(t *testing.T) {
		body := `{"error":{"message":"Incorrect API key provided"}}`
		srv, _ := newUpstream(t, http.StatusUnauthorized, body)

		res := New().Generate(context.Background(), "p", Settings{Provider: "openai", Endpoint: srv.URL})
		assert.False(t, res.Success)
		assert.Equal(t, body, res.Error)
		assert.Empty(t, res.Content)
	})

	t.Run("2xx 但不是 JSON", func(t *testing.T) {
		srv, _ := newUpstream(t, http.StatusOK, "<html>gateway</html>")

		res := New().Generate(context.Background(), "p", Settings{Provider: "ollama", Endpoint: srv.URL})
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "invalid JSON")
	})

	t.Run("2xx 缺少字段", func(t *testing.T) {
		srv, _ := newUpstream(t, http.StatusOK, `{"choices":[]}`)

		res := New().Generate(context.Background(), "p", Settings{Provider: "openai", Endpoint: srv.URL})
		assert.True(t, res.Success)
		assert.Empty(t, res.Content)
	})

	t.Run("未知服务商", func(t *testing.T) {
		res := New().Generate(context.Background(), "p", Settings{Provider: "gemini"})
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "gemini")
	})

	t.Run("custom 缺少地址", func(t *testing.T) {
		res := New().Generate(context.Background(), "p", Settings{Provider: "custom"})
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "endpoint")
	})

	t.Run("传输错误", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		res := New().Generate(context.Background(), "p", Settings{Provider: "openai", Endpoint: url})
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Error)
	})

	t.Run("超时", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		t.Cleanup(srv.Close)

		res := New().Generate(context.Background(), "p", Settings{Provider: "openai", Endpoint: srv.URL, Timeout: 50 * time.Millisecond})
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "deadline exceeded")
	})
}

type echoProvider struct{ OllamaProvider }

func (echoProvider) Name() string { return "echo" }

func TestWithProvider(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `{"response":"từ echo"}`)
	g := New(WithProvider(echoProvider{}), WithHTTPClient(srv.Client()))

	assert.Contains(t, g.Providers(), "echo")
	res := g.Generate(context.Background(), "p", Settings{Provider: "ECHO", Endpoint: srv.URL})
	assert.True(t, res.Success)
	assert.Equal(t, "từ echo", res.Content)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"未超长", "lỗi", 10, "lỗi"},
		{"ASCII", "unauthorized", 5, "unaut..."},
		// "ỗ" 占 3 字节，上限落在字符中间
		{"多字节字符边界", "lỗi xác thực", 3, "l..."},
		{"恰好在边界", "lỗi xác thực", 4, "lỗ..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
