package dashboard

import (
	"context"
	"testing"

	"terminal-terrace/ai-magazine/internal/keywordrewrite"
	articleModel "terminal-terrace/ai-magazine/internal/model/article"
	krModel "terminal-terrace/ai-magazine/internal/model/keywordrewrite"
	"terminal-terrace/ai-magazine/internal/testutils"
	"terminal-terrace/ai-magazine/internal/user"
	"terminal-terrace/ai-magazine/packages/authsdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewService(db, user.NewRepository(db), keywordrewrite.NewService(db, nil))
	ctx := context.Background()

	before, err := svc.Stats(ctx)
	require.NoError(t, err)

	admin := testutils.CreateTestUser(db, testutils.WithRole(authsdk.RoleAdmin))
	live := testutils.CreateTestArticle(db)
	trashed := testutils.CreateTestArticle(db)
	require.NoError(t, db.Delete(&articleModel.Article{}, trashed.ID).Error)
	testutils.CreateTestRewrite(db, live.ID)
	require.NoError(t, db.Create(&krModel.KeywordRewrite{
		Keyword:      "trí tuệ nhân tạo",
		Status:       krModel.StatusFailed,
		ErrorMessage: "timeout",
		CreatedBy:    admin.ID,
	}).Error)

	after, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, before.Articles.Total+2, after.Articles.Total, "总数包含回收站")
	assert.Equal(t, before.Articles.Trashed+1, after.Articles.Trashed)
	assert.Equal(t, before.Rewrites[articleModel.RewriteStatusPending]+1, after.Rewrites[articleModel.RewriteStatusPending])
	assert.Equal(t, before.Users[authsdk.RoleAdmin]+1, after.Users[authsdk.RoleAdmin])
	require.NotEmpty(t, after.RecentFailures)
	assert.Equal(t, "timeout", after.RecentFailures[0].ErrorMessage)
}
