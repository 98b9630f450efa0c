package media

import (
	"context"

	model "terminal-terrace/ai-magazine/internal/model/media"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List userID 为 0 时返回全部
func (r *Repository) List(ctx context.Context, userID uint, q ListQuery) ([]model.Media, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Media{})
	if userID != 0 {
		db = db.Where("user_id = ?", userID)
	}
	if q.Category != "" {
		db = db.Where("category = ?", q.Category)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Media
	err := db.Order("id DESC").Offset(q.Offset()).Limit(q.PerPage).Find(&items).Error
	return items, total, err
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*model.Media, error) {
	var m model.Media
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindByHash 同一上传者的相同内容
func (r *Repository) FindByHash(ctx context.Context, userID uint, hash string) (*model.Media, error) {
	var m model.Media
	err := r.db.WithContext(ctx).Where("user_id = ? AND file_hash = ?", userID, hash).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) Create(ctx context.Context, m *model.Media) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// Delete 物理删除记录，文件已从磁盘移除
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&model.Media{}, id).Error
}
