package media

import "terminal-terrace/ai-magazine/internal/dto"

// ListQuery 媒体列表
type ListQuery struct {
	dto.PageQuery
	Category string `form:"category" binding:"omitempty,max=50"`
}

