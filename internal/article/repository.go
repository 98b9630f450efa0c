package article

import (
	"context"

	articleModel "terminal-terrace/ai-magazine/internal/model/article"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List 分页查询；withTrashed/onlyTrashed 控制软删除记录
func (r *Repository) List(ctx context.Context, q ListQuery) ([]articleModel.Article, int64, error) {
	db := r.db.WithContext(ctx).Model(&articleModel.Article{})
	switch q.Trashed {
	case "with":
		db = db.Unscoped()
	case "only":
		db = db.Unscoped().Where("deleted_at IS NOT NULL")
	}
	if q.CategoryID != 0 {
		db = db.Where("category_id = ?", q.CategoryID)
	}
	if q.Search != "" {
		db = db.Where("title ILIKE ?", "%"+q.Search+"%")
	}
	if q.SourceName != "" {
		db = db.Where("source_name = ?", q.SourceName)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []articleModel.Article
	err := db.Order("created_at DESC, id DESC").
		Offset(q.Offset()).Limit(q.PerPage).
		Find(&articles).Error
	return articles, total, err
}

// GetByID 含改写稿
func (r *Repository) GetByID(ctx context.Context, id uint) (*articleModel.Article, error) {
	var a articleModel.Article
	if err := r.db.WithContext(ctx).Preload("RewrittenArticle").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByIDUnscoped 包含软删除记录
func (r *Repository) GetByIDUnscoped(ctx context.Context, id uint) (*articleModel.Article, error) {
	var a articleModel.Article
	if err := r.db.WithContext(ctx).Unscoped().First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Create(ctx context.Context, a *articleModel.Article) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *Repository) Save(ctx context.Context, a *articleModel.Article) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete 软删除
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&articleModel.Article{}, id).Error
}

// ForceDelete 物理删除文章及其改写稿、编辑记录
func (r *Repository) ForceDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rewriteIDs []uint
		if err := tx.Model(&articleModel.RewrittenArticle{}).Where("article_id = ?", id).Pluck("id", &rewriteIDs).Error; err != nil {
			return err
		}
		if len(rewriteIDs) > 0 {
			if err := tx.Where("rewritten_article_id IN ?", rewriteIDs).Delete(&articleModel.EditHistory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", rewriteIDs).Delete(&articleModel.RewrittenArticle{}).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&articleModel.Article{}, id).Error
	})
}

// Restore 恢复软删除
func (r *Repository) Restore(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Model(&articleModel.Article{}).
		Where("id = ?", id).Update("deleted_at", nil).Error
}

// SlugTaken slug 是否已被占用（含软删除），excludeID 为 0 时不排除
func (r *Repository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return r.taken(ctx, "slug", slug, excludeID)
}

// SourceURLTaken 来源链接是否已存在（含软删除）
func (r *Repository) SourceURLTaken(ctx context.Context, url string, excludeID uint) (bool, error) {
	if url == "" {
		return false, nil
	}
	return r.taken(ctx, "source_url", url, excludeID)
}

func (r *Repository) taken(ctx context.Context, column, value string, excludeID uint) (bool, error) {
	db := r.db.WithContext(ctx).Unscoped().Model(&articleModel.Article{}).Where(column+" = ?", value)
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

// ExistingSlugs 批量查询已存在的 slug（含软删除）
func (r *Repository) ExistingSlugs(ctx context.Context, slugs []string) (map[string]bool, error) {
	return r.existing(ctx, "slug", slugs)
}

// ExistingSourceURLs 批量查询已存在的来源链接（含软删除）
func (r *Repository) ExistingSourceURLs(ctx context.Context, urls []string) (map[string]bool, error) {
	return r.existing(ctx, "source_url", urls)
}

// existing 一次 WHERE ... IN 查询，不经过 gorm 的软删除过滤
func (r *Repository) existing(ctx context.Context, column string, values []string) (map[string]bool, error) {
	found := make(map[string]bool, len(values))
	if len(values) == 0 {
		return found, nil
	}

	query, args, err := sq.Select(column).Distinct().
		From(articleModel.Article{}.TableName()).
		Where(sq.Eq{column: values}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []string
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, v := range rows {
		found[v] = true
	}
	return found, nil
}

// UpsertRewrite 每篇文章一份改写稿，已存在时覆盖内容并重置为待审核
func (r *Repository) UpsertRewrite(ctx context.Context, rw *articleModel.RewrittenArticle) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "article_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"content":      rw.Content,
			"status":       articleModel.RewriteStatusPending,
			"provider":     rw.Provider,
			"model":        rw.Model,
			"reviewer_id":  nil,
			"review_notes": "",
			"reviewed_at":  nil,
			"updated_at":   gorm.Expr("NOW()"),
		}),
	}).Create(rw).Error
}

// GetRewriteByArticle 读取文章的改写稿
func (r *Repository) GetRewriteByArticle(ctx context.Context, articleID uint) (*articleModel.RewrittenArticle, error) {
	var rw articleModel.RewrittenArticle
	if err := r.db.WithContext(ctx).Where("article_id = ?", articleID).First(&rw).Error; err != nil {
		return nil, err
	}
	return &rw, nil
}

// UpdateAIContent 只更新 ai_content 列
func (r *Repository) UpdateAIContent(ctx context.Context, id uint, content string) error {
	return r.db.WithContext(ctx).Model(&articleModel.Article{}).Where("id = ?", id).Update("ai_content", content).Error
}
