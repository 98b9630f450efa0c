package article

import (
	"time"

	"gorm.io/datatypes"
)

// 改写稿状态
const (
	RewriteStatusPending  = "pending"
	RewriteStatusApproved = "approved"
	RewriteStatusRejected = "rejected"
)

// RewrittenArticle AI 改写稿，每篇原文最多一份
type RewrittenArticle struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ArticleID   uint       `gorm:"not null;uniqueIndex" json:"article_id"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Provider    string     `gorm:"type:varchar(50)" json:"provider"`
	Model       string     `gorm:"type:varchar(100)" json:"model"`
	ReviewerID  *uint      `gorm:"index" json:"reviewer_id"`
	ReviewNotes string     `gorm:"type:text" json:"review_notes,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Article     *Article      `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	EditHistory []EditHistory `gorm:"foreignKey:RewrittenArticleID" json:"edit_history,omitempty"`
}

func (RewrittenArticle) TableName() string {
	return "rewritten_articles"
}

// EditHistory 改写稿编辑记录
type EditHistory struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	RewrittenArticleID uint           `gorm:"not null;index" json:"rewritten_article_id"`
	EditorID           uint           `gorm:"not null;index" json:"editor_id"`
	PreviousContent    string         `gorm:"type:text" json:"previous_content"`
	NewContent         string         `gorm:"type:text" json:"new_content"`
	Changes            datatypes.JSON `json:"changes" swaggertype:"object"`
	CreatedAt          time.Time      `json:"created_at"`
}

func (EditHistory) TableName() string {
	return "edit_histories"
}
