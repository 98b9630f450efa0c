package dashboard

import (
	"context"

	"terminal-terrace/ai-magazine/internal/keywordrewrite"
	articleModel "terminal-terrace/ai-magazine/internal/model/article"
	krModel "terminal-terrace/ai-magazine/internal/model/keywordrewrite"
	"terminal-terrace/ai-magazine/internal/user"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

const recentFailureLimit = 5

type ArticleStats struct {
	Total   int64 `json:"total"`
	Trashed int64 `json:"trashed"`
}

// Stats 管理后台概览
type Stats struct {
	Articles       ArticleStats             `json:"articles"`
	Rewrites       map[string]int64         `json:"rewrites"`
	Approved       map[string]int64         `json:"approved"`
	Users          map[string]int64         `json:"users"`
	RecentFailures []krModel.KeywordRewrite `json:"recent_failures"`
}

type Service struct {
	db       *gorm.DB
	users    *user.Repository
	keywords *keywordrewrite.Service
}

func NewService(db *gorm.DB, users *user.Repository, keywords *keywordrewrite.Service) *Service {
	return &Service{db: db, users: users, keywords: keywords}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	var err error

	articles := articleModel.Article{}.TableName()
	if out.Articles.Total, err = s.count(ctx, sq.Select("COUNT(*)").From(articles)); err != nil {
		return nil, err
	}
	trashed := sq.Select("COUNT(*)").From(articles).Where(sq.NotEq{"deleted_at": nil})
	if out.Articles.Trashed, err = s.count(ctx, trashed); err != nil {
		return nil, err
	}

	if out.Rewrites, err = s.countByStatus(ctx, articleModel.RewrittenArticle{}.TableName(), false); err != nil {
		return nil, err
	}
	if out.Approved, err = s.countByStatus(ctx, articleModel.ApprovedArticle{}.TableName(), true); err != nil {
		return nil, err
	}
	if out.Users, err = s.users.CountByRole(ctx); err != nil {
		return nil, err
	}
	if out.RecentFailures, err = s.keywords.RecentFailures(ctx, recentFailureLimit); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) count(ctx context.Context, b sq.SelectBuilder) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	err = s.db.WithContext(ctx).Raw(query, args...).Scan(&n).Error
	return n, err
}

// countByStatus 按 status 分组计数，softDelete 为 true 时排除已删除行
func (s *Service) countByStatus(ctx context.Context, table string, softDelete bool) (map[string]int64, error) {
	b := sq.Select("status", "COUNT(*) AS count").From(table).GroupBy("status")
	if softDelete {
		b = b.Where(sq.Eq{"deleted_at": nil})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
