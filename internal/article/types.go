package article

import "terminal-terrace/ai-magazine/internal/dto"

// DuplicateMessage slug 或来源链接已存在
const DuplicateMessage = "Bài viết đã tồn tại"

// CreateRequest 创建文章
type CreateRequest struct {
	Title         string `json:"title" binding:"required,max=500"`
	Slug          string `json:"slug" binding:"max=500"`
	Summary       string `json:"summary"`
	Content       string `json:"content" binding:"required"`
	SourceName    string `json:"source_name" binding:"max=255"`
	SourceURL     string `json:"source_url" binding:"omitempty,url,max=1024"`
	FeaturedImage string `json:"featured_image" binding:"max=1024"`
	CategoryID    *uint  `json:"category_id"`
}

// UpdateRequest 部分更新，nil 字段保持不变
type UpdateRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1,max=500"`
	Slug          *string `json:"slug" binding:"omitempty,min=1,max=500"`
	Summary       *string `json:"summary"`
	Content       *string `json:"content" binding:"omitempty,min=1"`
	SourceName    *string `json:"source_name" binding:"omitempty,max=255"`
	SourceURL     *string `json:"source_url" binding:"omitempty,url,max=1024"`
	FeaturedImage *string `json:"featured_image" binding:"omitempty,max=1024"`
	CategoryID    *uint   `json:"category_id"`
}

// ListQuery 列表筛选
type ListQuery struct {
	dto.PageQuery
	CategoryID uint   `form:"category_id"`
	Search     string `form:"search"`
	SourceName string `form:"source_name"`
	Trashed    string `form:"trashed" binding:"omitempty,oneof=with only"` // 仅管理员有效
}

// ImportItem 爬虫提交的单篇文章，逐条校验
type ImportItem struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Summary       string `json:"summary"`
	Content       string `json:"content"`
	SourceName    string `json:"source_name"`
	SourceURL     string `json:"source_url"`
	FeaturedImage string `json:"featured_image"`
	CategoryID    *uint  `json:"category_id"`
	PublishedAt   string `json:"published_at"` // RFC3339，可为空
}

// ImportRequest 批量导入
type ImportRequest struct {
	Articles []ImportItem `json:"articles" binding:"required,min=1,max=500"`
}

// ImportError 单条失败原因
type ImportError struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ImportSkip 因重复被跳过的条目
type ImportSkip struct {
	Index  int    `json:"index"`
	Slug   string `json:"slug"`
	Reason string `json:"reason"` // slug, source_url
}

// ImportResult 导入结果
type ImportResult struct {
	Imported []uint        `json:"imported"`
	Skipped  []ImportSkip  `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// AIContentRequest 写入 AI 改写内容
type AIContentRequest struct {
	AIContent string `json:"ai_content" binding:"required"`
	Provider  string `json:"provider" binding:"max=50"`
	Model     string `json:"model" binding:"max=100"`
}

// ScrapeRequest 抓取单个链接并导入
type ScrapeRequest struct {
	URL        string `json:"url" binding:"required,url"`
	CategoryID *uint  `json:"category_id"`
}
