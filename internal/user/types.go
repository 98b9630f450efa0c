package user

import "terminal-terrace/ai-magazine/internal/dto"

// ListQuery 用户列表筛选
type ListQuery struct {
	dto.PageQuery
	Search string `form:"search"`
	Role   string `form:"role" binding:"omitempty,oneof=admin editor user"`
}

// CreateRequest 管理员创建用户
type CreateRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required,oneof=admin editor user"`
	Status   string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateRequest 部分更新
type UpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin editor user"`
	Status   *string `json:"status" binding:"omitempty,oneof=active inactive"`
}
