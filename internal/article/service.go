package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"terminal-terrace/ai-magazine/internal/aigateway"
	"terminal-terrace/ai-magazine/internal/aisetting"
	"terminal-terrace/ai-magazine/internal/dto"
	articleModel "terminal-terrace/ai-magazine/internal/model/article"
	"terminal-terrace/ai-magazine/internal/pkg/htmltext"
	"terminal-terrace/ai-magazine/internal/pkg/slug"
	"terminal-terrace/ai-magazine/packages/response"

	"gorm.io/gorm"
)

const excerptLength = 300

// TextGenerator AI 生成能力，由 aisetting.Service 提供
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (aigateway.Result, aigateway.Settings, error)
	PromptTemplate(ctx context.Context) string
}

// ReviewNotifier 新改写稿待审核通知
type ReviewNotifier interface {
	RewritePending(ctx context.Context, a *articleModel.Article, rw *articleModel.RewrittenArticle)
}

// Scraper 抓取单个页面为导入条目
type Scraper interface {
	Scrape(ctx context.Context, url string) (*ImportItem, error)
}

type Service struct {
	db        *gorm.DB
	repo      *Repository
	generator TextGenerator
	notifier  ReviewNotifier
	scraper   Scraper
}

type ServiceOption func(*Service)

func WithGenerator(g TextGenerator) ServiceOption {
	return func(s *Service) { s.generator = g }
}

func WithNotifier(n ReviewNotifier) ServiceOption {
	return func(s *Service) { s.notifier = n }
}

func WithScraper(sc Scraper) ServiceOption {
	return func(s *Service) { s.scraper = sc }
}

func NewService(db *gorm.DB, opts ...ServiceOption) *Service {
	s := &Service{db: db, repo: NewRepository(db)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func notFound() *response.BusinessError {
	return response.NotFoundError("Không tìm thấy bài viết")
}

func duplicateError(fields map[string][]string) *response.BusinessError {
	return response.ValidationError(DuplicateMessage, fields)
}

// List 分页列表，非管理员看不到回收站
func (s *Service) List(ctx context.Context, q ListQuery, isAdmin bool) (dto.Page[articleModel.Article], error) {
	q.Normalize()
	if !isAdmin {
		q.Trashed = ""
	}
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return dto.Page[articleModel.Article]{}, err
	}
	return dto.NewPage(items, total, q.PageQuery), nil
}

func (s *Service) Get(ctx context.Context, id uint) (*articleModel.Article, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound()
	}
	return a, err
}

// Create slug 与来源链接重复（含软删除）时返回 422
func (s *Service) Create(ctx context.Context, req CreateRequest, userID uint) (*articleModel.Article, error) {
	sourceURL := strings.TrimSpace(req.SourceURL)
	fields := map[string][]string{}

	if taken, err := s.repo.SourceURLTaken(ctx, sourceURL, 0); err != nil {
		return nil, err
	} else if taken {
		fields["source_url"] = []string{"Liên kết nguồn đã tồn tại"}
	}

	articleSlug := slug.Make(req.Slug)
	if articleSlug != "" {
		taken, err := s.repo.SlugTaken(ctx, articleSlug, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			fields["slug"] = []string{"Slug đã tồn tại"}
		}
	} else if len(fields) == 0 {
		var err error
		if articleSlug, err = s.uniqueSlug(ctx, req.Title); err != nil {
			return nil, err
		}
	}
	if len(fields) > 0 {
		return nil, duplicateError(fields)
	}

	a := &articleModel.Article{
		Title:         strings.TrimSpace(req.Title),
		Slug:          articleSlug,
		Summary:       summaryOf(req.Summary, req.Content),
		Content:       req.Content,
		SourceName:    req.SourceName,
		SourceURL:     sourceURL,
		FeaturedImage: featuredImageOf(req.FeaturedImage, req.Content),
		CategoryID:    req.CategoryID,
		CreatedBy:     &userID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	slog.Info("文章已创建", "op", "article.Create", "article_id", a.ID, "user_id", userID)
	return a, nil
}

// uniqueSlug 由标题生成 slug，冲突时追加序号
func (s *Service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = fmt.Sprintf("bai-viet-%d", time.Now().UnixNano())
	}
	for n := 1; n < 100; n++ {
		candidate := slug.WithSuffix(base, n)
		taken, err := s.repo.SlugTaken(ctx, candidate, 0)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return fmt.Sprintf("%s-%d", base, time.Now().UnixNano()), nil
}

// Update 部分更新，同样检查重复（排除自身）
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (*articleModel.Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string][]string{}
	if req.Slug != nil {
		newSlug := slug.Make(*req.Slug)
		if newSlug == "" {
			return nil, response.ValidationError("Slug không hợp lệ", map[string][]string{"slug": {"Slug không hợp lệ"}})
		}
		if newSlug != a.Slug {
			taken, err := s.repo.SlugTaken(ctx, newSlug, a.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				fields["slug"] = []string{"Slug đã tồn tại"}
			}
			a.Slug = newSlug
		}
	}
	if req.SourceURL != nil {
		newURL := strings.TrimSpace(*req.SourceURL)
		if newURL != a.SourceURL {
			taken, err := s.repo.SourceURLTaken(ctx, newURL, a.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				fields["source_url"] = []string{"Liên kết nguồn đã tồn tại"}
			}
			a.SourceURL = newURL
		}
	}
	if len(fields) > 0 {
		return nil, duplicateError(fields)
	}

	if req.Title != nil {
		a.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.Summary != nil {
		a.Summary = *req.Summary
	}
	if a.Summary == "" {
		a.Summary = summaryOf("", a.Content)
	}
	if req.SourceName != nil {
		a.SourceName = *req.SourceName
	}
	if req.FeaturedImage != nil {
		a.FeaturedImage = *req.FeaturedImage
	}
	if req.CategoryID != nil {
		a.CategoryID = req.CategoryID
	}
	// Preload 的关联不参与保存
	a.RewrittenArticle = nil

	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete 软删除
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ForceDelete 物理删除（管理员）
func (s *Service) ForceDelete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByIDUnscoped(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound()
		}
		return err
	}
	if err := s.repo.ForceDelete(ctx, id); err != nil {
		slog.Error("物理删除文章失败", "op", "article.ForceDelete", "article_id", id, "error", err)
		return err
	}
	slog.Info("文章已物理删除", "op", "article.ForceDelete", "article_id", id)
	return nil
}

// Restore 恢复回收站中的文章
func (s *Service) Restore(ctx context.Context, id uint) (*articleModel.Article, error) {
	a, err := s.repo.GetByIDUnscoped(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound()
	}
	if err != nil {
		return nil, err
	}
	if !a.DeletedAt.Valid {
		return nil, response.ValidationError("Bài viết không nằm trong thùng rác", nil)
	}
	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// SetAIContent 写入外部生成的 AI 内容，并生成/覆盖待审核改写稿
func (s *Service) SetAIContent(ctx context.Context, id uint, req AIContentRequest) (*articleModel.RewrittenArticle, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	provider := req.Provider
	if provider == "" {
		provider = "external"
	}
	return s.storeRewrite(ctx, a, req.AIContent, provider, req.Model)
}

// Rewrite 用当前 AI 设置改写文章
func (s *Service) Rewrite(ctx context.Context, id uint) (*articleModel.RewrittenArticle, error) {
	if s.generator == nil {
		return nil, response.NewBusinessError(response.WithErrorMessage("Chưa cấu hình dịch vụ AI"))
	}
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	prompt := RenderPrompt(s.generator.PromptTemplate(ctx), a)
	result, settings, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		slog.Error("AI 改写失败", "op", "article.Rewrite", "article_id", a.ID, "provider", settings.Provider, "error", result.Error)
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.UpstreamError),
			response.WithErrorMessage("Viết lại bằng AI thất bại"),
			response.WithError(errors.New(result.Error)),
		)
	}
	if strings.TrimSpace(result.Content) == "" {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.UpstreamError),
			response.WithErrorMessage("AI không trả về nội dung"),
		)
	}
	return s.storeRewrite(ctx, a, result.Content, settings.Provider, settings.Model)
}

func (s *Service) storeRewrite(ctx context.Context, a *articleModel.Article, content, provider, model string) (*articleModel.RewrittenArticle, error) {
	rw := &articleModel.RewrittenArticle{
		ArticleID: a.ID,
		Content:   content,
		Status:    articleModel.RewriteStatusPending,
		Provider:  provider,
		Model:     model,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		if err := repo.UpdateAIContent(ctx, a.ID, content); err != nil {
			return err
		}
		return repo.UpsertRewrite(ctx, rw)
	})
	if err != nil {
		slog.Error("保存改写稿失败", "op", "article.storeRewrite", "article_id", a.ID, "error", err)
		return nil, err
	}

	slog.Info("改写稿待审核", "op", "article.storeRewrite", "article_id", a.ID, "rewrite_id", rw.ID, "provider", provider)
	if s.notifier != nil {
		s.notifier.RewritePending(ctx, a, rw)
	}
	return rw, nil
}

// RenderPrompt 用文章标题与纯文本正文填充模板
func RenderPrompt(tmpl string, a *articleModel.Article) string {
	return aisetting.RenderPrompt(tmpl, map[string]string{
		"title":   a.Title,
		"content": htmltext.PlainText(a.Content),
	})
}

func summaryOf(summary, content string) string {
	if strings.TrimSpace(summary) != "" {
		return strings.TrimSpace(summary)
	}
	return htmltext.Excerpt(content, excerptLength)
}

func featuredImageOf(image, content string) string {
	if image != "" {
		return image
	}
	return htmltext.FirstImage(content)
}
