package aisetting

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"terminal-terrace/ai-magazine/config"
	"terminal-terrace/ai-magazine/internal/aigateway"
	"terminal-terrace/ai-magazine/internal/cache"
	model "terminal-terrace/ai-magazine/internal/model/aisetting"
	"terminal-terrace/ai-magazine/packages/response"

	"gorm.io/gorm"
)

const (
	cacheKey = "ai_settings"
	// DefaultTestPrompt ai:test 与后台测试按钮使用
	DefaultTestPrompt = "Trả lời đúng một từ: OK"
)

// ErrNotConfigured 尚未初始化 AI 设置
var ErrNotConfigured = errors.New("ai settings not configured")

type Service struct {
	repo     *Repository
	cache    *cache.Store
	gateway  aigateway.Generator
	defaults config.AIConfig
}

func NewService(db *gorm.DB, store *cache.Store, gateway aigateway.Generator, defaults config.AIConfig) *Service {
	return &Service{
		repo:     NewRepository(db),
		cache:    store,
		gateway:  gateway,
		defaults: defaults,
	}
}

// Current 当前生效的设置（带缓存）
func (s *Service) Current(ctx context.Context) (*model.AISetting, error) {
	setting, err := cache.Remember(ctx, s.cache, cacheKey, func(ctx context.Context) (*model.AISetting, error) {
		return s.repo.First(ctx)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("Chưa cấu hình AI, hãy chạy lệnh ai:init"),
			response.WithError(ErrNotConfigured),
		)
	}
	if err != nil {
		return nil, err
	}
	return setting, nil
}

// GatewaySettings 当前设置转换为网关调用参数
func (s *Service) GatewaySettings(ctx context.Context) (aigateway.Settings, error) {
	setting, err := s.Current(ctx)
	if err != nil {
		return aigateway.Settings{}, err
	}
	return ToGatewaySettings(setting, s.defaults.RequestTimeout()), nil
}

// ToGatewaySettings 模型转换为网关参数
func ToGatewaySettings(m *model.AISetting, fallbackTimeout time.Duration) aigateway.Settings {
	timeout := fallbackTimeout
	if m.TimeoutSeconds > 0 {
		timeout = time.Duration(m.TimeoutSeconds) * time.Second
	}
	return aigateway.Settings{
		Provider:     m.Provider,
		APIKey:       m.APIKey,
		Model:        m.Model,
		Endpoint:     m.Endpoint,
		APIKeyHeader: m.APIKeyHeader,
		Temperature:  m.Temperature,
		MaxTokens:    m.MaxTokens,
		Timeout:      timeout,
	}
}

// Update 更新设置并使缓存失效；不存在时创建
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*model.AISetting, error) {
	setting, err := s.repo.First(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = s.defaultSetting()
	} else if err != nil {
		return nil, err
	}

	setting.Provider = req.Provider
	setting.Model = req.Model
	setting.Endpoint = req.Endpoint
	setting.APIKeyHeader = req.APIKeyHeader
	if req.APIKey != nil {
		setting.APIKey = strings.TrimSpace(*req.APIKey)
	}
	if req.Temperature != nil {
		setting.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		setting.MaxTokens = *req.MaxTokens
	}
	if req.TimeoutSeconds != nil {
		setting.TimeoutSeconds = *req.TimeoutSeconds
	}
	if strings.TrimSpace(req.PromptTemplate) != "" {
		setting.PromptTemplate = req.PromptTemplate
	}

	if setting.Provider == "custom" && setting.Endpoint == "" {
		return nil, response.ValidationError("Nhà cung cấp custom cần có endpoint", map[string][]string{
			"endpoint": {"Trường 'endpoint' là bắt buộc với nhà cung cấp custom"},
		})
	}

	if err := s.repo.Save(ctx, setting); err != nil {
		return nil, err
	}
	s.cache.Forget(ctx, cacheKey)
	slog.Info("AI 设置已更新", "op", "aisetting.Update", "provider", setting.Provider, "model", setting.Model)
	return setting, nil
}

// Init 表为空时写入默认设置，返回是否新建
func (s *Service) Init(ctx context.Context) (*model.AISetting, bool, error) {
	existing, err := s.repo.First(ctx)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	setting := s.defaultSetting()
	if err := s.repo.Create(ctx, setting); err != nil {
		return nil, false, err
	}
	s.cache.Forget(ctx, cacheKey)
	slog.Info("已创建默认 AI 设置", "op", "aisetting.Init", "provider", setting.Provider)
	return setting, true, nil
}

func (s *Service) defaultSetting() *model.AISetting {
	provider := s.defaults.DefaultProvider
	if provider == "" {
		provider = "openai"
	}
	temperature := s.defaults.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	maxTokens := s.defaults.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}
	return &model.AISetting{
		Provider:       provider,
		Model:          s.defaults.DefaultModel,
		Endpoint:       s.defaults.DefaultEndpoint,
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		PromptTemplate: model.DefaultPromptTemplate,
		TimeoutSeconds: int(s.defaults.RequestTimeout() / time.Second),
	}
}

// Test 用当前设置发起一次调用
func (s *Service) Test(ctx context.Context, prompt string) (aigateway.Result, error) {
	settings, err := s.GatewaySettings(ctx)
	if err != nil {
		return aigateway.Result{}, err
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultTestPrompt
	}
	return s.gateway.Generate(ctx, prompt, settings), nil
}

// Generate 用当前设置生成文本，供改写流程使用
func (s *Service) Generate(ctx context.Context, prompt string) (aigateway.Result, aigateway.Settings, error) {
	settings, err := s.GatewaySettings(ctx)
	if err != nil {
		return aigateway.Result{}, settings, err
	}
	return s.gateway.Generate(ctx, prompt, settings), settings, nil
}

// PromptTemplate 当前模板，未配置时使用默认模板
func (s *Service) PromptTemplate(ctx context.Context) string {
	setting, err := s.Current(ctx)
	if err != nil || strings.TrimSpace(setting.PromptTemplate) == "" {
		return model.DefaultPromptTemplate
	}
	return setting.PromptTemplate
}

// RenderPrompt 替换 {{title}}、{{content}}、{{keyword}}；模板不含 {{content}} 时追加正文
func RenderPrompt(tmpl string, vars map[string]string) string {
	out := tmpl
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{{"+k+"}}", v)
	}
	if content, ok := vars["content"]; ok && !strings.Contains(tmpl, "{{content}}") {
		out += "\n\n" + content
	}
	return out
}
