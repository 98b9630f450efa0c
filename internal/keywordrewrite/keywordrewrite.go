package keywordrewrite

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"terminal-terrace/ai-magazine/internal/aigateway"
	"terminal-terrace/ai-magazine/internal/aisetting"
	"terminal-terrace/ai-magazine/internal/dto"
	model "terminal-terrace/ai-magazine/internal/model/keywordrewrite"
	"terminal-terrace/ai-magazine/internal/pkg/htmltext"
	"terminal-terrace/ai-magazine/packages/response"

	"gorm.io/gorm"
)

// PromptTemplate 关键词改写提示词
const PromptTemplate = `Hãy viết lại nội dung dưới đây thành một bài viết tiếng Việt hoàn chỉnh, tự nhiên và chuẩn SEO cho từ khóa "{{keyword}}". Giữ nguyên các dữ kiện quan trọng, trả về HTML với các thẻ <h2>, <p>.

{{content}}`

// Generator 由 aisetting.Service 实现
type Generator interface {
	Generate(ctx context.Context, prompt string) (aigateway.Result, aigateway.Settings, error)
}

// CreateRequest 新建任务
type CreateRequest struct {
	Keyword       string `json:"keyword" binding:"required,max=255"`
	SourceContent string `json:"source_content" binding:"required"`
}

// ListQuery 任务列表
type ListQuery struct {
	dto.PageQuery
	Status  string `form:"status" binding:"omitempty,oneof=pending processing completed failed"`
	Keyword string `form:"keyword"`
}

type Service struct {
	db        *gorm.DB
	generator Generator
}

func NewService(db *gorm.DB, generator Generator) *Service {
	return &Service{db: db, generator: generator}
}

func notFound() *response.BusinessError {
	return response.NotFoundError("Không tìm thấy tác vụ")
}

// Create 建任务并立即同步处理
func (s *Service) Create(ctx context.Context, userID uint, req CreateRequest) (*model.KeywordRewrite, error) {
	job := &model.KeywordRewrite{
		Keyword:       strings.TrimSpace(req.Keyword),
		SourceContent: req.SourceContent,
		Status:        model.StatusPending,
		CreatedBy:     userID,
	}
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return s.process(ctx, job)
}

// Retry 只有失败的任务可以重试
func (s *Service) Retry(ctx context.Context, id uint) (*model.KeywordRewrite, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != model.StatusFailed {
		return nil, response.ValidationError("Chỉ có thể chạy lại tác vụ thất bại", nil)
	}
	return s.process(ctx, job)
}

// process pending/failed -> processing -> completed|failed
func (s *Service) process(ctx context.Context, job *model.KeywordRewrite) (*model.KeywordRewrite, error) {
	if s.generator == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("Chưa cấu hình dịch vụ AI"),
		)
	}
	job.Status = model.StatusProcessing
	job.ErrorMessage = ""
	if err := s.save(ctx, job, "status", "error_message"); err != nil {
		return nil, err
	}

	prompt := aisetting.RenderPrompt(PromptTemplate, map[string]string{
		"keyword": job.Keyword,
		"content": htmltext.PlainText(job.SourceContent),
	})
	result, settings, err := s.generator.Generate(ctx, prompt)

	switch {
	case err != nil:
		job.Status = model.StatusFailed
		job.ErrorMessage = failureMessage(err)
	case !result.Success:
		job.Status = model.StatusFailed
		job.ErrorMessage = result.Error
	default:
		job.Status = model.StatusCompleted
		job.RewrittenContent = result.Content
	}
	// 客户端断开后仍需落库终态，否则任务停留在 processing 无法重试
	if err := s.save(context.WithoutCancel(ctx), job, "status", "error_message", "rewritten_content"); err != nil {
		return nil, err
	}

	if job.Status == model.StatusFailed {
		slog.Warn("关键词改写失败", "op", "keywordrewrite.process", "job_id", job.ID, "provider", settings.Provider, "error", job.ErrorMessage)
	} else {
		slog.Info("关键词改写完成", "op", "keywordrewrite.process", "job_id", job.ID, "provider", settings.Provider)
	}
	return job, nil
}

func failureMessage(err error) string {
	be := response.AsBusinessError(err)
	if be.Err == nil {
		return be.Msg
	}
	return be.Msg + ": " + be.Err.Error()
}

func (s *Service) save(ctx context.Context, job *model.KeywordRewrite, columns ...string) error {
	return s.db.WithContext(ctx).Model(job).Select(columns).Updates(job).Error
}

func (s *Service) List(ctx context.Context, q ListQuery) (dto.Page[model.KeywordRewrite], error) {
	q.Normalize()
	db := s.db.WithContext(ctx).Model(&model.KeywordRewrite{})
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.Keyword != "" {
		db = db.Where("keyword ILIKE ?", "%"+q.Keyword+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return dto.Page[model.KeywordRewrite]{}, err
	}
	var items []model.KeywordRewrite
	if err := db.Order("id DESC").Offset(q.Offset()).Limit(q.PerPage).Find(&items).Error; err != nil {
		return dto.Page[model.KeywordRewrite]{}, err
	}
	return dto.NewPage(items, total, q.PageQuery), nil
}

func (s *Service) Get(ctx context.Context, id uint) (*model.KeywordRewrite, error) {
	var job model.KeywordRewrite
	err := s.db.WithContext(ctx).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound()
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.KeywordRewrite{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound()
	}
	return nil
}

// RecentFailures 最近失败的任务
func (s *Service) RecentFailures(ctx context.Context, limit int) ([]model.KeywordRewrite, error) {
	var items []model.KeywordRewrite
	err := s.db.WithContext(ctx).
		Where("status = ?", model.StatusFailed).
		Order("updated_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
