package approved

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"terminal-terrace/ai-magazine/internal/dto"
	articleModel "terminal-terrace/ai-magazine/internal/model/article"
	"terminal-terrace/ai-magazine/internal/pkg/slug"
	"terminal-terrace/ai-magazine/packages/response"

	"gorm.io/gorm"
)

type Service struct {
	repo *Repository
}

func NewService(db *gorm.DB) *Service {
	return &Service{repo: NewRepository(db)}
}

func notFound() *response.BusinessError {
	return response.NotFoundError("Không tìm thấy bài viết")
}

// List 管理端列表
func (s *Service) List(ctx context.Context, q ListQuery) (dto.Page[articleModel.ApprovedArticle], error) {
	q.Normalize()
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return dto.Page[articleModel.ApprovedArticle]{}, err
	}
	return dto.NewPage(items, total, q.PageQuery), nil
}

// PublicList 只返回已发布
func (s *Service) PublicList(ctx context.Context, q ListQuery) (dto.Page[articleModel.ApprovedArticle], error) {
	q.Status = articleModel.ApprovedStatusPublished
	return s.List(ctx, q)
}

func (s *Service) Get(ctx context.Context, id uint) (*articleModel.ApprovedArticle, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound()
	}
	return a, err
}

// GetPublished 未发布与不存在一样返回 404
func (s *Service) GetPublished(ctx context.Context, articleSlug string) (*articleModel.ApprovedArticle, error) {
	a, err := s.repo.GetPublishedBySlug(ctx, articleSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound()
	}
	return a, err
}

func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (*articleModel.ApprovedArticle, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil {
		newSlug := slug.Make(*req.Slug)
		if newSlug == "" {
			return nil, response.ValidationError("Slug không hợp lệ", map[string][]string{"slug": {"Slug không hợp lệ"}})
		}
		taken, err := s.repo.SlugTaken(ctx, newSlug, a.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, response.ValidationError("Slug đã tồn tại", map[string][]string{"slug": {"Slug đã tồn tại"}})
		}
		a.Slug = newSlug
	}
	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Summary != nil {
		a.Summary = *req.Summary
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.FeaturedImage != nil {
		a.FeaturedImage = *req.FeaturedImage
	}
	if req.CategoryID != nil {
		a.CategoryID = req.CategoryID
	}

	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// SetStatus 发布时记录首次发布时间
func (s *Service) SetStatus(ctx context.Context, id uint, status string) (*articleModel.ApprovedArticle, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	if status == articleModel.ApprovedStatusPublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	slog.Info("发布状态已更新", "op", "approved.SetStatus", "approved_id", id, "status", status)
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
