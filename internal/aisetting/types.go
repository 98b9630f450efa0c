package aisetting

import (
	"time"

	model "terminal-terrace/ai-magazine/internal/model/aisetting"
)

// UpdateRequest 更新 AI 设置；APIKey 为空表示保留原值
type UpdateRequest struct {
	Provider       string   `json:"provider" binding:"required,oneof=openai anthropic mistral ollama custom"`
	APIKey         *string  `json:"api_key"`
	Model          string   `json:"model" binding:"max=100"`
	Endpoint       string   `json:"endpoint" binding:"omitempty,url,max=512"`
	APIKeyHeader   string   `json:"api_key_header" binding:"max=100"`
	Temperature    *float64 `json:"temperature" binding:"omitempty,min=0,max=2"`
	MaxTokens      *int     `json:"max_tokens" binding:"omitempty,min=1,max=32000"`
	PromptTemplate string   `json:"prompt_template"`
	TimeoutSeconds *int     `json:"timeout_seconds" binding:"omitempty,min=1,max=600"`
}

// TestRequest 测试调用
type TestRequest struct {
	Prompt string `json:"prompt" binding:"max=2000"`
}

// SettingView 对外展示，API Key 脱敏
type SettingView struct {
	ID             uint      `json:"id"`
	Provider       string    `json:"provider"`
	APIKey         string    `json:"api_key"`
	HasAPIKey      bool      `json:"has_api_key"`
	Model          string    `json:"model"`
	Endpoint       string    `json:"endpoint"`
	APIKeyHeader   string    `json:"api_key_header"`
	Temperature    float64   `json:"temperature"`
	MaxTokens      int       `json:"max_tokens"`
	PromptTemplate string    `json:"prompt_template"`
	TimeoutSeconds int       `json:"timeout_seconds"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewSettingView 转换为展示结构
func NewSettingView(s *model.AISetting) SettingView {
	return SettingView{
		ID:             s.ID,
		Provider:       s.Provider,
		APIKey:         MaskKey(s.APIKey),
		HasAPIKey:      s.APIKey != "",
		Model:          s.Model,
		Endpoint:       s.Endpoint,
		APIKeyHeader:   s.APIKeyHeader,
		Temperature:    s.Temperature,
		MaxTokens:      s.MaxTokens,
		PromptTemplate: s.PromptTemplate,
		TimeoutSeconds: s.TimeoutSeconds,
		UpdatedAt:      s.UpdatedAt,
	}
}

// MaskKey 只保留首尾 4 位
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "********" + key[len(key)-4:]
}
