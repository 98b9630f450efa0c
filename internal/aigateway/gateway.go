package aigateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// maxResponseBytes 上游响应体读取上限
const maxResponseBytes = 4 << 20

// Settings 单次调用的服务商设置，由调用方显式传入
type Settings struct {
	Provider     string
	APIKey       string
	Model        string
	Endpoint     string // 为空时使用服务商默认地址
	APIKeyHeader string // custom 服务商的密钥头，为空则使用 Bearer
	Temperature  float64
	MaxTokens    int
	Timeout      time.Duration // <=0 时只受 ctx 与 HTTP 客户端限制
}

// Result 统一结果
type Result struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

func failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

// Provider 服务商适配：构造请求、从响应中取出生成文本
type Provider interface {
	Name() string
	NewRequest(ctx context.Context, prompt string, s Settings) (*http.Request, error)
	// ExtractContent 响应体不是合法 JSON 时返回错误；字段缺失时返回空串
	ExtractContent(body []byte) (string, error)
}

// Generator 供业务层依赖的最小接口
type Generator interface {
	Generate(ctx context.Context, prompt string, s Settings) Result
}

// Gateway 按 Settings.Provider 分发到对应服务商
type Gateway struct {
	client    *http.Client
	providers map[string]Provider
}

type Option func(*Gateway)

// WithHTTPClient 自定义 HTTP 客户端
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		g.client = c
	}
}

// WithProvider 注册或替换服务商
func WithProvider(p Provider) Option {
	return func(g *Gateway) {
		g.providers[strings.ToLower(p.Name())] = p
	}
}

// New 创建网关，默认注册 openai、anthropic、mistral、ollama、custom
func New(opts ...Option) *Gateway {
	g := &Gateway{
		client:    &http.Client{},
		providers: make(map[string]Provider),
	}
	for _, p := range []Provider{OpenAIProvider{}, AnthropicProvider{}, MistralProvider{}, OllamaProvider{}, CustomProvider{}} {
		g.providers[p.Name()] = p
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Providers 已注册服务商名称
func (g *Gateway) Providers() []string {
	names := make([]string, 0, len(g.providers))
	for name := range g.providers {
		names = append(names, name)
	}
	return names
}

// Generate 发起一次调用，所有失败都转换为 Success=false，不重试
func (g *Gateway) Generate(ctx context.Context, prompt string, s Settings) Result {
	name := strings.ToLower(strings.TrimSpace(s.Provider))
	log := slog.With("op", "aigateway.Generate", "provider", name, "model", s.Model)

	p, ok := g.providers[name]
	if !ok {
		log.Warn("不支持的 AI 服务商")
		return failure(fmt.Sprintf("unsupported AI provider: %q", s.Provider))
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req, err := p.NewRequest(ctx, prompt, s)
	if err != nil {
		log.Error("构造请求失败", "error", err)
		return failure(err.Error())
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		log.Error("调用 AI 服务失败", "error", err)
		return failure(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Error("读取响应失败", "status", resp.StatusCode, "error", err)
		return failure(err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error("AI 服务返回错误", "status", resp.StatusCode, "body", truncate(string(body), 500))
		return failure(string(body))
	}

	content, err := p.ExtractContent(body)
	if err != nil {
		log.Error("解析响应失败", "status", resp.StatusCode, "error", err)
		return failure(err.Error())
	}

	log.Info("AI 调用完成", "elapsed", time.Since(start), "chars", len(content))
	return Result{Success: true, Content: content}
}

// truncate 按字节上限截断，不切开多字节字符
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
