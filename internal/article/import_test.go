package article

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	articleModel "terminal-terrace/ai-magazine/internal/model/article"
	"terminal-terrace/ai-magazine/internal/pkg/slug"
	"terminal-terrace/ai-magazine/internal/testutils"
	"terminal-terrace/ai-magazine/packages/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func uniqueTitle(prefix string) string {
	return prefix + " " + uuid.NewString()[:8]
}

func TestImportSkipsExisting(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	user := testutils.CreateTestUser(db)

	live := testutils.CreateTestArticle(db)
	trashed := testutils.CreateTestArticle(db)
	require.NoError(t, db.Delete(&articleModel.Article{}, trashed.ID).Error)

	fresh := uniqueTitle("Bài mới")
	items := []ImportItem{
		{Title: fresh, Content: "<p>Mới</p>", SourceURL: "https://news.example.com/" + uuid.NewString()},
		{Title: "Trùng slug", Slug: live.Slug, Content: "x", SourceURL: "https://news.example.com/" + uuid.NewString()},
		{Title: uniqueTitle("Trùng link đã xóa"), Content: "x", SourceURL: trashed.SourceURL},
		{Title: "", Content: "x"},
		{Title: uniqueTitle("Ngày sai"), Content: "x", PublishedAt: "hôm qua"},
	}

	result, err := svc.Import(ctx, items, user.ID)
	require.NoError(t, err)

	require.Len(t, result.Imported, 1)
	assert.Equal(t, []ImportSkip{
		{Index: 1, Slug: live.Slug, Reason: SkipReasonSlug},
		{Index: 2, Slug: items[2].slugForTest(), Reason: SkipReasonSourceURL},
	}, result.Skipped)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Index)
	assert.Equal(t, 4, result.Errors[1].Index)

	var imported articleModel.Article
	require.NoError(t, db.First(&imported, result.Imported[0]).Error)
	assert.Equal(t, fresh, imported.Title)
	assert.Equal(t, "Mới", imported.Summary)
	require.NotNil(t, imported.CreatedBy)
	assert.Equal(t, user.ID, *imported.CreatedBy)
}

// 同一批次内的重复只与数据库已有数据比对，两条都会写入
func TestImportWithinBatchDuplicatesNotCrossChecked(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	title := uniqueTitle("Cùng tiêu đề")
	items := []ImportItem{
		{Title: title, Content: "một"},
		{Title: title, Content: "hai"},
	}

	result, err := svc.Import(ctx, items, 0)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 2)
	assert.Empty(t, result.Skipped)

	var count int64
	db.Model(&articleModel.Article{}).Where("slug = ?", items[0].slugForTest()).Count(&count)
	assert.Equal(t, int64(2), count)

	// 再次导入时两条都被跳过
	again, err := svc.Import(ctx, items, 0)
	require.NoError(t, err)
	assert.Empty(t, again.Imported)
	assert.Len(t, again.Skipped, 2)
}

func TestImportRowFailureKeepsOtherRows(t *testing.T) {
	svc, db := setupService(t)

	first := uniqueTitle("Trước")
	last := uniqueTitle("Sau")
	items := []ImportItem{
		{Title: first, Content: "x"},
		{Title: strings.Repeat("Tiêu đề quá dài ", 40), Content: "x"},
		{Title: last, Content: "x"},
	}

	result, err := svc.Import(context.Background(), items, 0)
	require.NoError(t, err)
	require.Len(t, result.Imported, 2)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 1, result.Errors[0].Index)
	assert.Equal(t, "Không thể lưu bài viết", result.Errors[0].Message)

	var count int64
	require.NoError(t, db.Model(&articleModel.Article{}).Where("title IN ?", []string{first, last}).Count(&count).Error)
	assert.Equal(t, int64(2), count, "同批其他条目正常提交")
}

func TestImportUnexpectedFaultRollsBackBatch(t *testing.T) {
	svc, db := setupService(t)

	// 第二次插入之后注入非数据类错误
	const callbackName = "test:article_insert_fault"
	var inserts int
	require.NoError(t, db.Callback().Create().After("gorm:create").Register(callbackName, func(tx *gorm.DB) {
		if tx.Statement.Table != (articleModel.Article{}).TableName() {
			return
		}
		inserts++
		if inserts == 2 {
			_ = tx.AddError(errors.New("connection reset by peer"))
		}
	}))
	t.Cleanup(func() { _ = db.Callback().Create().Remove(callbackName) })

	titles := []string{uniqueTitle("Một"), uniqueTitle("Hai"), uniqueTitle("Ba")}
	items := make([]ImportItem, len(titles))
	for i, title := range titles {
		items[i] = ImportItem{Title: title, Content: "x"}
	}

	result, err := svc.Import(context.Background(), items, 0)
	require.Error(t, err)
	assert.Nil(t, result)
	be := response.AsBusinessError(err)
	assert.Equal(t, response.Fail, be.Code)
	assert.Equal(t, http.StatusInternalServerError, be.Code.HTTPStatus())
	assert.Equal(t, "Nhập bài viết thất bại", be.Msg)
	assert.Equal(t, 2, inserts, "故障发生在第一条已写入之后")

	var count int64
	require.NoError(t, db.Model(&articleModel.Article{}).Where("title IN ?", titles).Count(&count).Error)
	assert.Zero(t, count, "整批回滚")
}

func TestImportPublishedAt(t *testing.T) {
	svc, db := setupService(t)

	result, err := svc.Import(context.Background(), []ImportItem{
		{Title: uniqueTitle("Có ngày"), Content: "x", PublishedAt: "2025-03-01T08:00:00+07:00"},
	}, 0)
	require.NoError(t, err)
	require.Len(t, result.Imported, 1)

	var a articleModel.Article
	require.NoError(t, db.First(&a, result.Imported[0]).Error)
	require.NotNil(t, a.PublishedAt)
	assert.Equal(t, 2025, a.PublishedAt.Year())
}

type fakeScraper struct {
	item *ImportItem
	err  error
}

func (f *fakeScraper) Scrape(context.Context, string) (*ImportItem, error) {
	return f.item, f.err
}

func TestScrape(t *testing.T) {
	t.Run("抓取结果作为单条批次导入", func(t *testing.T) {
		item := &ImportItem{Title: uniqueTitle("Thu thập"), Content: "<p>Nội dung</p>", SourceURL: "https://news.example.com/" + uuid.NewString()}
		svc, db := setupService(t, WithScraper(&fakeScraper{item: item}))
		category := testutils.CreateTestCategory(db, nil)

		result, err := svc.Scrape(context.Background(), ScrapeRequest{URL: item.SourceURL, CategoryID: &category.ID}, 0)
		require.NoError(t, err)
		require.Len(t, result.Imported, 1)

		var a articleModel.Article
		require.NoError(t, db.First(&a, result.Imported[0]).Error)
		require.NotNil(t, a.CategoryID)
		assert.Equal(t, category.ID, *a.CategoryID)
	})

	t.Run("抓取失败返回 502", func(t *testing.T) {
		svc, _ := setupService(t, WithScraper(&fakeScraper{err: errors.New("timeout")}))
		_, err := svc.Scrape(context.Background(), ScrapeRequest{URL: "https://news.example.com/x"}, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
	})
}

func (it ImportItem) slugForTest() string {
	if it.Slug != "" {
		return slug.Make(it.Slug)
	}
	return slug.Make(it.Title)
}
