package approved

import (
	"context"

	articleModel "terminal-terrace/ai-magazine/internal/model/article"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, q ListQuery) ([]articleModel.ApprovedArticle, int64, error) {
	db := r.db.WithContext(ctx).Model(&articleModel.ApprovedArticle{})
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.CategoryID != 0 {
		db = db.Where("category_id = ?", q.CategoryID)
	}
	if q.Search != "" {
		db = db.Where("title ILIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []articleModel.ApprovedArticle
	err := db.Order("published_at DESC NULLS LAST, id DESC").
		Offset(q.Offset()).Limit(q.PerPage).
		Find(&items).Error
	return items, total, err
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*articleModel.ApprovedArticle, error) {
	var a articleModel.ApprovedArticle
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// GetPublishedBySlug 公开详情
func (r *Repository) GetPublishedBySlug(ctx context.Context, slug string) (*articleModel.ApprovedArticle, error) {
	var a articleModel.ApprovedArticle
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, articleModel.ApprovedStatusPublished).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Latest 最新发布的文章，供 RSS 使用
func (r *Repository) Latest(ctx context.Context, limit int) ([]articleModel.ApprovedArticle, error) {
	var items []articleModel.ApprovedArticle
	err := r.db.WithContext(ctx).
		Where("status = ?", articleModel.ApprovedStatusPublished).
		Order("published_at DESC NULLS LAST, id DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// SlugTaken 含软删除
func (r *Repository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&articleModel.ApprovedArticle{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) Save(ctx context.Context, a *articleModel.ApprovedArticle) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&articleModel.ApprovedArticle{}, id).Error
}
