package approved

import "terminal-terrace/ai-magazine/internal/dto"

// ListQuery 列表筛选；公开接口固定只看已发布
type ListQuery struct {
	dto.PageQuery
	Status     string `form:"status" binding:"omitempty,oneof=published unpublished"`
	CategoryID uint   `form:"category_id"`
	Search     string `form:"search"`
}

// UpdateRequest 部分更新
type UpdateRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1,max=500"`
	Slug          *string `json:"slug" binding:"omitempty,min=1,max=500"`
	Summary       *string `json:"summary"`
	Content       *string `json:"content" binding:"omitempty,min=1"`
	FeaturedImage *string `json:"featured_image" binding:"omitempty,max=1024"`
	CategoryID    *uint   `json:"category_id"`
}

// StatusRequest 发布或下线
type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=published unpublished"`
}
