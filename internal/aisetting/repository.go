package aisetting

import (
	"context"

	model "terminal-terrace/ai-magazine/internal/model/aisetting"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// First 第一行即生效配置
func (r *Repository) First(ctx context.Context) (*model.AISetting, error) {
	var s model.AISetting
	if err := r.db.WithContext(ctx).Order("id ASC").First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Create(ctx context.Context, s *model.AISetting) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repository) Save(ctx context.Context, s *model.AISetting) error {
	return r.db.WithContext(ctx).Save(s).Error
}
