package rewrite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"terminal-terrace/ai-magazine/internal/dto"
	articleModel "terminal-terrace/ai-magazine/internal/model/article"
	"terminal-terrace/ai-magazine/internal/pkg/htmltext"
	"terminal-terrace/ai-magazine/internal/pkg/slug"
	"terminal-terrace/ai-magazine/packages/response"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const excerptLength = 300

type Service struct {
	db   *gorm.DB
	repo *Repository
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, repo: NewRepository(db)}
}

func notFound() *response.BusinessError {
	return response.NotFoundError("Không tìm thấy bản viết lại")
}

func (s *Service) List(ctx context.Context, q ListQuery) (dto.Page[articleModel.RewrittenArticle], error) {
	q.Normalize()
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return dto.Page[articleModel.RewrittenArticle]{}, err
	}
	return dto.NewPage(items, total, q.PageQuery), nil
}

func (s *Service) Get(ctx context.Context, id uint) (*articleModel.RewrittenArticle, error) {
	rw, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound()
	}
	return rw, err
}

// Edit 修改内容并记录编辑历史；已通过的稿件不可再改
func (s *Service) Edit(ctx context.Context, id, editorID uint, req EditRequest) (*articleModel.RewrittenArticle, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		rw, err := repo.Lock(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound()
		}
		if err != nil {
			return err
		}
		if rw.Status == articleModel.RewriteStatusApproved {
			return response.ValidationError("Bản viết lại đã được duyệt, không thể chỉnh sửa", nil)
		}

		changes, err := json.Marshal(EditChanges{
			Note:           req.Note,
			PreviousLength: utf8.RuneCountInString(rw.Content),
			NewLength:      utf8.RuneCountInString(req.Content),
			PreviousStatus: rw.Status,
		})
		if err != nil {
			return err
		}
		if err := repo.CreateHistory(ctx, &articleModel.EditHistory{
			RewrittenArticleID: rw.ID,
			EditorID:           editorID,
			PreviousContent:    rw.Content,
			NewContent:         req.Content,
			Changes:            datatypes.JSON(changes),
		}); err != nil {
			return err
		}

		// 被拒绝的稿件编辑后重新进入待审核
		return repo.UpdateFields(ctx, rw.ID, map[string]any{
			"content": req.Content,
			"status":  articleModel.RewriteStatusPending,
		})
	})
	if err != nil {
		return nil, err
	}
	slog.Info("改写稿已编辑", "op", "rewrite.Edit", "rewrite_id", id, "editor_id", editorID)
	return s.Get(ctx, id)
}

// Approve 审核通过：更新状态并生成未发布的 ApprovedArticle
func (s *Service) Approve(ctx context.Context, id, reviewerID uint, req ApproveRequest) (*articleModel.ApprovedArticle, error) {
	var approved *articleModel.ApprovedArticle
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		rw, err := repo.Lock(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound()
		}
		if err != nil {
			return err
		}
		if rw.Status == articleModel.RewriteStatusApproved {
			return response.ValidationError("Bản viết lại đã được duyệt", nil)
		}
		if rw.Article == nil {
			return response.NotFoundError("Không tìm thấy bài viết gốc")
		}

		now := time.Now()
		if err := repo.UpdateFields(ctx, rw.ID, map[string]any{
			"status":       articleModel.RewriteStatusApproved,
			"reviewer_id":  reviewerID,
			"review_notes": req.Notes,
			"reviewed_at":  now,
		}); err != nil {
			return err
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			title = rw.Article.Title
		}
		approvedSlug, err := uniqueApprovedSlug(ctx, repo, title)
		if err != nil {
			return err
		}
		summary := strings.TrimSpace(req.Summary)
		if summary == "" {
			summary = htmltext.Excerpt(rw.Content, excerptLength)
		}

		approved = &articleModel.ApprovedArticle{
			Title:              title,
			Slug:               approvedSlug,
			Summary:            summary,
			Content:            rw.Content,
			Status:             articleModel.ApprovedStatusUnpublished,
			FeaturedImage:      rw.Article.FeaturedImage,
			CategoryID:         rw.Article.CategoryID,
			UserID:             reviewerID,
			RewrittenArticleID: rw.ID,
		}
		return repo.CreateApproved(ctx, approved)
	})
	if err != nil {
		var be *response.BusinessError
		if !errors.As(err, &be) {
			slog.Error("审核通过失败，已回滚", "op", "rewrite.Approve", "rewrite_id", id, "error", err)
		}
		return nil, err
	}

	slog.Info("改写稿审核通过", "op", "rewrite.Approve", "rewrite_id", id, "approved_id", approved.ID, "reviewer_id", reviewerID)
	return approved, nil
}

// Reject 拒绝待审核稿件
func (s *Service) Reject(ctx context.Context, id, reviewerID uint, req RejectRequest) (*articleModel.RewrittenArticle, error) {
	rw, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rw.Status != articleModel.RewriteStatusPending {
		return nil, response.ValidationError("Chỉ có thể từ chối bản viết lại đang chờ duyệt", nil)
	}

	if err := s.repo.UpdateFields(ctx, id, map[string]any{
		"status":       articleModel.RewriteStatusRejected,
		"reviewer_id":  reviewerID,
		"review_notes": req.Notes,
		"reviewed_at":  time.Now(),
	}); err != nil {
		return nil, err
	}
	slog.Info("改写稿已拒绝", "op", "rewrite.Reject", "rewrite_id", id, "reviewer_id", reviewerID)
	return s.Get(ctx, id)
}

func uniqueApprovedSlug(ctx context.Context, repo *Repository, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = fmt.Sprintf("bai-viet-%d", time.Now().Unix())
	}
	for n := 1; n < 100; n++ {
		candidate := slug.WithSuffix(base, n)
		taken, err := repo.ApprovedSlugTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return fmt.Sprintf("%s-%d", base, time.Now().UnixNano()), nil
}
