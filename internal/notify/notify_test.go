package notify

import (
	"context"
	"errors"
	"testing"

	articleModel "terminal-terrace/ai-magazine/internal/model/article"
	"terminal-terrace/ai-magazine/internal/testutils"
	"terminal-terrace/ai-magazine/packages/authsdk"
	"terminal-terrace/ai-magazine/packages/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	enabled bool
	err     error
	to      []string
	data    email.ReviewRequestData
	calls   int
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) SendReviewRequest(to []string, data email.ReviewRequestData) error {
	m.calls++
	m.to = to
	m.data = data
	return m.err
}

func TestRewritePending(t *testing.T) {
	db := testutils.SetupTestDB(t)
	db.Exec("DELETE FROM users")
	admin := testutils.CreateTestUser(db, testutils.WithRole(authsdk.RoleAdmin))
	editor := testutils.CreateTestUser(db, testutils.WithRole(authsdk.RoleEditor))
	testutils.CreateTestUser(db, testutils.WithRole(authsdk.RoleUser))
	testutils.CreateTestUser(db, testutils.WithRole(authsdk.RoleEditor), testutils.WithStatus("inactive"))

	a := &articleModel.Article{Title: "Tin AI"}
	rw := &articleModel.RewrittenArticle{ID: 42, Provider: "anthropic"}

	tests := []struct {
		name      string
		mailer    *fakeMailer
		wantCalls int
	}{
		{name: "未配置 SMTP 不发送", mailer: &fakeMailer{}, wantCalls: 0},
		{name: "发送给启用的管理员和编辑", mailer: &fakeMailer{enabled: true}, wantCalls: 1},
		{name: "发送失败不影响调用方", mailer: &fakeMailer{enabled: true, err: errors.New("smtp down")}, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewReviewNotifier(db, tt.mailer, "AI Magazine", "http://cms.local/")
			n.async = false

			n.RewritePending(context.Background(), a, rw)

			require.Equal(t, tt.wantCalls, tt.mailer.calls)
			if tt.wantCalls == 0 {
				return
			}
			assert.Equal(t, []string{admin.Email, editor.Email}, tt.mailer.to)
			assert.Equal(t, "Tin AI", tt.mailer.data.ArticleTitle)
			assert.Equal(t, "anthropic", tt.mailer.data.Provider)
			assert.Equal(t, "http://cms.local/admin/rewritten-articles/42", tt.mailer.data.ReviewURL)
		})
	}
}
