package category

// CreateRequest 创建分类
type CreateRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Slug        string `json:"slug" binding:"max=255"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
}

// UpdateRequest 部分更新；parent_id 传 0 表示改为顶级分类
type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Slug        *string `json:"slug" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	ParentID    *uint   `json:"parent_id"`
}
