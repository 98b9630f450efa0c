package rewrite

import "terminal-terrace/ai-magazine/internal/dto"

// ListQuery 改写稿列表筛选
type ListQuery struct {
	dto.PageQuery
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// EditRequest 编辑改写稿内容
type EditRequest struct {
	Content string `json:"content" binding:"required"`
	Note    string `json:"note" binding:"max=500"`
}

// ApproveRequest 审核通过，可覆盖标题与摘要
type ApproveRequest struct {
	Title   string `json:"title" binding:"max=500"`
	Summary string `json:"summary"`
	Notes   string `json:"notes"`
}

// RejectRequest 拒绝
type RejectRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// EditChanges 编辑记录中的 changes 字段
type EditChanges struct {
	Note           string `json:"note,omitempty"`
	PreviousLength int    `json:"previous_length"`
	NewLength      int    `json:"new_length"`
	PreviousStatus string `json:"previous_status"`
}
