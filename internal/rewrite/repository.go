package rewrite

import (
	"context"

	articleModel "terminal-terrace/ai-magazine/internal/model/article"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// withArticle 原文可能已进回收站，仍需展示标题
func withArticle(db *gorm.DB) *gorm.DB {
	return db.Preload("Article", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

func (r *Repository) List(ctx context.Context, q ListQuery) ([]articleModel.RewrittenArticle, int64, error) {
	db := r.db.WithContext(ctx).Model(&articleModel.RewrittenArticle{})
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []articleModel.RewrittenArticle
	err := withArticle(db).Order("updated_at DESC, id DESC").
		Offset(q.Offset()).Limit(q.PerPage).
		Find(&items).Error
	return items, total, err
}

// GetByID 含原文与编辑记录（新的在前）
func (r *Repository) GetByID(ctx context.Context, id uint) (*articleModel.RewrittenArticle, error) {
	var rw articleModel.RewrittenArticle
	err := withArticle(r.db.WithContext(ctx)).
		Preload("EditHistory", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC, id DESC") }).
		First(&rw, id).Error
	if err != nil {
		return nil, err
	}
	return &rw, nil
}

// Lock 在事务内加行锁读取
func (r *Repository) Lock(ctx context.Context, id uint) (*articleModel.RewrittenArticle, error) {
	var rw articleModel.RewrittenArticle
	err := withArticle(r.db.WithContext(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&rw, id).Error
	if err != nil {
		return nil, err
	}
	return &rw, nil
}

// UpdateFields 只更新给定列
func (r *Repository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&articleModel.RewrittenArticle{}).Where("id = ?", id).Updates(fields).Error
}

func (r *Repository) CreateHistory(ctx context.Context, h *articleModel.EditHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// ApprovedSlugTaken 发布稿 slug 是否已占用（含软删除）
func (r *Repository) ApprovedSlugTaken(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&articleModel.ApprovedArticle{}).
		Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateApproved(ctx context.Context, a *articleModel.ApprovedArticle) error {
	return r.db.WithContext(ctx).Create(a).Error
}
