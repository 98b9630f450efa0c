package article

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	articleModel "terminal-terrace/ai-magazine/internal/model/article"
	"terminal-terrace/ai-magazine/internal/pkg/slug"
	"terminal-terrace/ai-magazine/packages/database"
	"terminal-terrace/ai-magazine/packages/response"

	"gorm.io/gorm"
)

// 跳过原因
const (
	SkipReasonSlug      = "slug"
	SkipReasonSourceURL = "source_url"
)

type importCandidate struct {
	item      ImportItem
	slug      string
	sourceURL string
}

// Import 批量导入爬虫文章
//
// 先一次性计算全部 slug 与来源链接，用两条 IN 查询找出已存在的记录（含软删除），
// 再顺序遍历一次：命中即跳过，单条数据错误（超长、约束冲突）回滚到保存点并记为条目错误。
// 同一批次内部的重复不互相比对，只与数据库已有数据比对。
// 查询失败、连接错误等意外错误整体回滚。
func (s *Service) Import(ctx context.Context, items []ImportItem, userID uint) (*ImportResult, error) {
	candidates := make([]importCandidate, len(items))
	slugs := make([]string, 0, len(items))
	urls := make([]string, 0, len(items))
	for i, it := range items {
		c := importCandidate{item: it, sourceURL: strings.TrimSpace(it.SourceURL)}
		if strings.TrimSpace(it.Slug) != "" {
			c.slug = slug.Make(it.Slug)
		} else {
			c.slug = slug.Make(it.Title)
		}
		if c.slug != "" {
			slugs = append(slugs, c.slug)
		}
		if c.sourceURL != "" {
			urls = append(urls, c.sourceURL)
		}
		candidates[i] = c
	}

	result := &ImportResult{
		Imported: []uint{},
		Skipped:  []ImportSkip{},
		Errors:   []ImportError{},
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		existingSlugs, err := repo.ExistingSlugs(ctx, slugs)
		if err != nil {
			return fmt.Errorf("query existing slugs: %w", err)
		}
		existingURLs, err := repo.ExistingSourceURLs(ctx, urls)
		if err != nil {
			return fmt.Errorf("query existing source urls: %w", err)
		}

		for i, c := range candidates {
			if msg := validateImportItem(c); msg != "" {
				result.Errors = append(result.Errors, ImportError{Index: i, Title: c.item.Title, Message: msg})
				continue
			}
			if existingSlugs[c.slug] {
				result.Skipped = append(result.Skipped, ImportSkip{Index: i, Slug: c.slug, Reason: SkipReasonSlug})
				continue
			}
			if c.sourceURL != "" && existingURLs[c.sourceURL] {
				result.Skipped = append(result.Skipped, ImportSkip{Index: i, Slug: c.slug, Reason: SkipReasonSourceURL})
				continue
			}

			a, err := c.toArticle(userID)
			if err != nil {
				result.Errors = append(result.Errors, ImportError{Index: i, Title: c.item.Title, Message: err.Error()})
				continue
			}

			// 单条插入失败只回滚到保存点
			savepoint := fmt.Sprintf("import_item_%d", i)
			if err := tx.SavePoint(savepoint).Error; err != nil {
				return err
			}
			if err := repo.Create(ctx, a); err != nil {
				if rbErr := tx.RollbackTo(savepoint).Error; rbErr != nil {
					return rbErr
				}
				if !database.IsDataError(err) {
					return fmt.Errorf("insert item %d: %w", i, err)
				}
				slog.Warn("导入单条文章失败", "op", "article.Import", "index", i, "slug", c.slug, "error", err)
				result.Errors = append(result.Errors, ImportError{Index: i, Title: c.item.Title, Message: "Không thể lưu bài viết"})
				continue
			}
			result.Imported = append(result.Imported, a.ID)
		}
		return nil
	})
	if err != nil {
		slog.Error("批量导入失败，已回滚", "op", "article.Import", "count", len(items), "error", err)
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("Nhập bài viết thất bại"),
			response.WithError(err),
		)
	}

	slog.Info("批量导入完成", "op", "article.Import",
		"imported", len(result.Imported), "skipped", len(result.Skipped), "errors", len(result.Errors))
	return result, nil
}

func validateImportItem(c importCandidate) string {
	switch {
	case strings.TrimSpace(c.item.Title) == "":
		return "Thiếu tiêu đề"
	case strings.TrimSpace(c.item.Content) == "":
		return "Thiếu nội dung"
	case c.slug == "":
		return "Không tạo được slug từ tiêu đề"
	}
	return ""
}

func (c importCandidate) toArticle(userID uint) (*articleModel.Article, error) {
	a := &articleModel.Article{
		Title:         strings.TrimSpace(c.item.Title),
		Slug:          c.slug,
		Summary:       summaryOf(c.item.Summary, c.item.Content),
		Content:       c.item.Content,
		SourceName:    c.item.SourceName,
		SourceURL:     c.sourceURL,
		FeaturedImage: featuredImageOf(c.item.FeaturedImage, c.item.Content),
		CategoryID:    c.item.CategoryID,
	}
	if userID != 0 {
		a.CreatedBy = &userID
	}
	if c.item.PublishedAt != "" {
		t, err := time.Parse(time.RFC3339, c.item.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("published_at không hợp lệ: %s", c.item.PublishedAt)
		}
		a.PublishedAt = &t
	}
	return a, nil
}

// Scrape 抓取单个页面，作为单条批次导入
func (s *Service) Scrape(ctx context.Context, req ScrapeRequest, userID uint) (*ImportResult, error) {
	if s.scraper == nil {
		return nil, response.NewBusinessError(response.WithErrorMessage("Chưa bật chức năng thu thập"))
	}
	item, err := s.scraper.Scrape(ctx, req.URL)
	if err != nil {
		slog.Warn("抓取页面失败", "op", "article.Scrape", "url", req.URL, "error", err)
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.UpstreamError),
			response.WithErrorMessage("Không thể thu thập nội dung từ liên kết"),
			response.WithError(err),
		)
	}
	if req.CategoryID != nil {
		item.CategoryID = req.CategoryID
	}
	return s.Import(ctx, []ImportItem{*item}, userID)
}
