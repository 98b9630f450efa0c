package article

import (
	"time"

	"gorm.io/gorm"
)

// 发布状态
const (
	ApprovedStatusPublished   = "published"
	ApprovedStatusUnpublished = "unpublished"
)

// ApprovedArticle 审核通过、可公开展示的文章
type ApprovedArticle struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Title              string         `gorm:"type:varchar(500);not null" json:"title"`
	Slug               string         `gorm:"type:varchar(500);not null;uniqueIndex" json:"slug"`
	Summary            string         `gorm:"type:text" json:"summary"`
	Content            string         `gorm:"type:text;not null" json:"content"`
	Status             string         `gorm:"type:varchar(20);not null;default:'unpublished';index" json:"status"`
	FeaturedImage      string         `gorm:"type:varchar(1024)" json:"featured_image"`
	CategoryID         *uint          `gorm:"index" json:"category_id"`
	UserID             uint           `gorm:"not null;index" json:"user_id"`
	RewrittenArticleID uint           `gorm:"not null;index" json:"rewritten_article_id"`
	PublishedAt        *time.Time     `json:"published_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ApprovedArticle) TableName() string {
	return "approved_articles"
}
