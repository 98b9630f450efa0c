package model

import (
	"gorm.io/gorm"

	"terminal-terrace/ai-magazine/internal/model/aisetting"
	"terminal-terrace/ai-magazine/internal/model/article"
	"terminal-terrace/ai-magazine/internal/model/category"
	"terminal-terrace/ai-magazine/internal/model/keywordrewrite"
	"terminal-terrace/ai-magazine/internal/model/media"
	"terminal-terrace/ai-magazine/internal/model/user"
	"terminal-terrace/ai-magazine/internal/model/website"
)

func InitTable(db *gorm.DB) error {
	// 自动迁移数据库表结构
	return db.AutoMigrate(
		&user.User{},
		&category.Category{},
		// 文章相关模型
		&article.Article{},
		&article.RewrittenArticle{},
		&article.EditHistory{},
		&article.ApprovedArticle{},
		&media.Media{},
		&aisetting.AISetting{},
		&website.Config{},
		&keywordrewrite.KeywordRewrite{},
	)
}
