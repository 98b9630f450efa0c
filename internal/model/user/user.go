package user

import (
	"time"

	"gorm.io/gorm"
)

// 用户状态
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User 用户
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         string         `gorm:"type:varchar(20);not null;default:'user';index" json:"role"` // admin, editor, user
	Status       string         `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Avatar       string         `gorm:"type:varchar(512)" json:"avatar,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsActive 是否可登录
func (u *User) IsActive() bool {
	return u.Status == "" || u.Status == StatusActive
}
