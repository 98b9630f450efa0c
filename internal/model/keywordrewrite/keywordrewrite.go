package keywordrewrite

import "time"

// 任务状态
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// KeywordRewrite 按关键词改写任务
type KeywordRewrite struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Keyword          string    `gorm:"type:varchar(255);not null;index" json:"keyword"`
	SourceContent    string    `gorm:"type:text" json:"source_content"`
	RewrittenContent string    `gorm:"type:text" json:"rewritten_content"`
	Status           string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ErrorMessage     string    `gorm:"type:text" json:"error_message,omitempty"`
	CreatedBy        uint      `gorm:"not null;index" json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (KeywordRewrite) TableName() string {
	return "keyword_rewrites"
}
