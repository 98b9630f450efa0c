package website

import (
	"time"

	"gorm.io/datatypes"
)

// Config 网站配置（单例）
type Config struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	SiteName     string         `gorm:"type:varchar(255)" json:"site_name"`
	Description  string         `gorm:"type:text" json:"description"`
	Logo         string         `gorm:"type:varchar(512)" json:"logo"`
	Favicon      string         `gorm:"type:varchar(512)" json:"favicon"`
	ContactEmail string         `gorm:"type:varchar(255)" json:"contact_email"`
	FooterText   string         `gorm:"type:text" json:"footer_text"`
	SocialLinks  datatypes.JSON `json:"social_links" swaggertype:"object"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (Config) TableName() string {
	return "website_configs"
}
