package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	articleModel "terminal-terrace/ai-magazine/internal/model/article"
	userModel "terminal-terrace/ai-magazine/internal/model/user"
	"terminal-terrace/ai-magazine/internal/pkg/htmltext"
	"terminal-terrace/ai-magazine/packages/authsdk"
	"terminal-terrace/ai-magazine/packages/email"

	"gorm.io/gorm"
)

// Mailer 由 email.Client 实现
type Mailer interface {
	Enabled() bool
	SendReviewRequest(to []string, data email.ReviewRequestData) error
}

// ReviewNotifier 新改写稿待审核时邮件通知管理员与编辑
type ReviewNotifier struct {
	db          *gorm.DB
	mailer      Mailer
	siteName    string
	frontendURL string
	async       bool
}

func NewReviewNotifier(db *gorm.DB, mailer Mailer, siteName, frontendURL string) *ReviewNotifier {
	return &ReviewNotifier{
		db:          db,
		mailer:      mailer,
		siteName:    siteName,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		async:       true,
	}
}

// RewritePending 未配置 SMTP 时直接忽略；发送失败只记日志
func (n *ReviewNotifier) RewritePending(ctx context.Context, a *articleModel.Article, rw *articleModel.RewrittenArticle) {
	if n.mailer == nil || !n.mailer.Enabled() {
		return
	}

	to, err := n.reviewerEmails(ctx)
	if err != nil {
		slog.Error("查询审核人员失败", "op", "notify.RewritePending", "error", err)
		return
	}
	if len(to) == 0 {
		return
	}

	data := email.ReviewRequestData{
		SiteName:     n.siteName,
		ArticleTitle: a.Title,
		Excerpt:      htmltext.Excerpt(rw.Content, 200),
		Provider:     rw.Provider,
		Model:        rw.Model,
	}
	if n.frontendURL != "" {
		data.ReviewURL = fmt.Sprintf("%s/admin/rewritten-articles/%d", n.frontendURL, rw.ID)
	}

	send := func() {
		if err := n.mailer.SendReviewRequest(to, data); err != nil {
			slog.Warn("发送审核通知失败", "op", "notify.RewritePending", "rewrite_id", rw.ID, "error", err)
			return
		}
		slog.Info("已发送审核通知", "op", "notify.RewritePending", "rewrite_id", rw.ID, "recipients", len(to))
	}
	if n.async {
		go send()
		return
	}
	send()
}

func (n *ReviewNotifier) reviewerEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := n.db.WithContext(ctx).Model(&userModel.User{}).
		Where("role IN ? AND status = ?", []string{authsdk.RoleAdmin, authsdk.RoleEditor}, userModel.StatusActive).
		Order("id").
		Pluck("email", &emails).Error
	return emails, err
}
