package aisetting

import "time"

// DefaultPromptTemplate {{title}} 与 {{content}} 会被替换
const DefaultPromptTemplate = "Hãy viết lại bài báo sau bằng tiếng Việt, giữ nguyên ý chính, văn phong báo chí, không thêm thông tin mới.\n\nTiêu đề: {{title}}\n\nNội dung:\n{{content}}"

// AISetting AI 服务设置，只使用第一行
// 不要直接作为接口响应返回，APIKey 为明文
type AISetting struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Provider       string    `gorm:"type:varchar(50);not null;default:'openai'" json:"provider"`
	APIKey         string    `gorm:"type:text" json:"api_key"`
	Model          string    `gorm:"type:varchar(100)" json:"model"`
	Endpoint       string    `gorm:"type:varchar(512)" json:"endpoint"`
	APIKeyHeader   string    `gorm:"type:varchar(100)" json:"api_key_header"`
	Temperature    float64   `gorm:"default:0.7" json:"temperature"`
	MaxTokens      int       `gorm:"default:2000" json:"max_tokens"`
	PromptTemplate string    `gorm:"type:text" json:"prompt_template"`
	TimeoutSeconds int       `gorm:"default:60" json:"timeout_seconds"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (AISetting) TableName() string {
	return "ai_settings"
}
