package media

import (
	"time"

	"gorm.io/gorm"
)

// Media 上传文件记录，FilePath 相对于私有存储目录
type Media struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	FileName  string         `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath  string         `gorm:"type:varchar(512);not null" json:"file_path"`
	FileHash  string         `gorm:"type:varchar(64);index" json:"file_hash"`
	MimeType  string         `gorm:"type:varchar(100)" json:"mime_type"`
	FileSize  int64          `json:"file_size"`
	Category  string         `gorm:"type:varchar(50);default:'general'" json:"category"`
	URL       string         `gorm:"-" json:"url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Media) TableName() string {
	return "media"
}
