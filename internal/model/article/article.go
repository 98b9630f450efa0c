package article

import (
	"time"

	"gorm.io/gorm"
)

// Article 原始文章（手动录入或爬虫导入）
// slug 与 source_url 的唯一性由服务层显式检查（包含软删除记录），不建唯一索引
type Article struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"type:varchar(500);not null" json:"title"`
	Slug          string         `gorm:"type:varchar(500);not null;index" json:"slug"`
	Summary       string         `gorm:"type:text" json:"summary"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	SourceName    string         `gorm:"type:varchar(255);index" json:"source_name"`
	SourceURL     string         `gorm:"column:source_url;type:varchar(1024);index" json:"source_url"`
	FeaturedImage string         `gorm:"type:varchar(1024)" json:"featured_image"`
	CategoryID    *uint          `gorm:"index" json:"category_id"`
	CreatedBy     *uint          `gorm:"index" json:"created_by"`
	AIContent     string         `gorm:"column:ai_content;type:text" json:"ai_content,omitempty"`
	PublishedAt   *time.Time     `json:"published_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty" swaggertype:"string"`

	RewrittenArticle *RewrittenArticle `gorm:"foreignKey:ArticleID" json:"rewritten_article,omitempty"`
}

func (Article) TableName() string {
	return "articles"
}
