package rewrite

import (
	"context"
	"encoding/json"
	"testing"

	articleModel "terminal-terrace/ai-magazine/internal/model/article"
	"terminal-terrace/ai-magazine/internal/testutils"
	"terminal-terrace/ai-magazine/packages/authsdk"
	"terminal-terrace/ai-magazine/packages/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditRecordsHistory(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	editor := testutils.CreateTestUser(db, testutils.WithRole(authsdk.RoleEditor))
	a := testutils.CreateTestArticle(db)
	rw := testutils.CreateTestRewrite(db, a.ID)
	db.Model(rw).Update("status", articleModel.RewriteStatusRejected)

	updated, err := svc.Edit(ctx, rw.ID, editor.ID, EditRequest{Content: "<p>Sửa</p>", Note: "chỉnh tiêu đề"})
	require.NoError(t, err)
	assert.Equal(t, "<p>Sửa</p>", updated.Content)
	assert.Equal(t, articleModel.RewriteStatusPending, updated.Status, "编辑后重新待审核")
	require.Len(t, updated.EditHistory, 1)

	h := updated.EditHistory[0]
	assert.Equal(t, editor.ID, h.EditorID)
	assert.Equal(t, rw.Content, h.PreviousContent)

	var changes EditChanges
	require.NoError(t, json.Unmarshal(h.Changes, &changes))
	assert.Equal(t, "chỉnh tiêu đề", changes.Note)
	assert.Equal(t, articleModel.RewriteStatusRejected, changes.PreviousStatus)
	assert.Equal(t, 10, changes.NewLength)
}

func TestApprove(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	reviewer := testutils.CreateTestUser(db, testutils.WithRole(authsdk.RoleAdmin))
	category := testutils.CreateTestCategory(db, nil)

	first := testutils.CreateTestArticle(db, testutils.WithCategory(category.ID))
	rw1 := testutils.CreateTestRewrite(db, first.ID)
	second := testutils.CreateTestArticle(db)
	rw2 := testutils.CreateTestRewrite(db, second.ID)

	approved, err := svc.Approve(ctx, rw1.ID, reviewer.ID, ApproveRequest{Title: "Tiêu đề chung", Notes: "ok"})
	require.NoError(t, err)
	assert.Equal(t, "tieu-de-chung", approved.Slug)
	assert.Equal(t, articleModel.ApprovedStatusUnpublished, approved.Status)
	assert.Equal(t, rw1.Content, approved.Content)
	assert.Equal(t, reviewer.ID, approved.UserID)
	require.NotNil(t, approved.CategoryID)
	assert.Equal(t, category.ID, *approved.CategoryID)
	assert.Equal(t, "Nội dung đã viết lại", approved.Summary)

	stored, err := svc.Get(ctx, rw1.ID)
	require.NoError(t, err)
	assert.Equal(t, articleModel.RewriteStatusApproved, stored.Status)
	require.NotNil(t, stored.ReviewerID)
	assert.Equal(t, reviewer.ID, *stored.ReviewerID)
	assert.NotNil(t, stored.ReviewedAt)

	// 同名标题生成不同 slug
	again, err := svc.Approve(ctx, rw2.ID, reviewer.ID, ApproveRequest{Title: "Tiêu đề chung"})
	require.NoError(t, err)
	assert.Equal(t, "tieu-de-chung-2", again.Slug)

	_, err = svc.Approve(ctx, rw1.ID, reviewer.ID, ApproveRequest{})
	assert.Equal(t, response.InvalidParameter, response.AsBusinessError(err).Code)

	_, err = svc.Edit(ctx, rw1.ID, reviewer.ID, EditRequest{Content: "x"})
	assert.Equal(t, response.InvalidParameter, response.AsBusinessError(err).Code)
}

func TestReject(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	reviewer := testutils.CreateTestUser(db, testutils.WithRole(authsdk.RoleEditor))
	a := testutils.CreateTestArticle(db)
	rw := testutils.CreateTestRewrite(db, a.ID)

	rejected, err := svc.Reject(ctx, rw.ID, reviewer.ID, RejectRequest{Notes: "Sai thông tin"})
	require.NoError(t, err)
	assert.Equal(t, articleModel.RewriteStatusRejected, rejected.Status)
	assert.Equal(t, "Sai thông tin", rejected.ReviewNotes)

	_, err = svc.Reject(ctx, rw.ID, reviewer.ID, RejectRequest{})
	assert.Equal(t, response.InvalidParameter, response.AsBusinessError(err).Code)

	_, err = svc.Reject(ctx, 999999, reviewer.ID, RejectRequest{})
	assert.Equal(t, response.NotFound, response.AsBusinessError(err).Code)
}

func TestList(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewService(db)
	a := testutils.CreateTestArticle(db)
	rw := testutils.CreateTestRewrite(db, a.ID)

	page, err := svc.List(context.Background(), ListQuery{Status: articleModel.RewriteStatusPending})
	require.NoError(t, err)
	require.NotEmpty(t, page.Items)
	for _, item := range page.Items {
		assert.Equal(t, articleModel.RewriteStatusPending, item.Status)
		if item.ID == rw.ID {
			require.NotNil(t, item.Article)
			assert.Equal(t, a.Title, item.Article.Title)
		}
	}
}
