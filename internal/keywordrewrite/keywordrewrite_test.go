package keywordrewrite

import (
	"context"
	"errors"
	"testing"

	"terminal-terrace/ai-magazine/internal/aigateway"
	model "terminal-terrace/ai-magazine/internal/model/keywordrewrite"
	"terminal-terrace/ai-magazine/internal/testutils"
	"terminal-terrace/ai-magazine/packages/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	results []aigateway.Result
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (aigateway.Result, aigateway.Settings, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return aigateway.Result{}, aigateway.Settings{}, f.err
	}
	r := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return r, aigateway.Settings{Provider: "mistral"}, nil
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name       string
		gen        *fakeGenerator
		wantStatus string
		wantError  string
	}{
		{
			name:       "生成成功",
			gen:        &fakeGenerator{results: []aigateway.Result{{Success: true, Content: "<p>Bài SEO</p>"}}},
			wantStatus: model.StatusCompleted,
		},
		{
			name:       "服务商返回错误",
			gen:        &fakeGenerator{results: []aigateway.Result{{Error: `{"message":"Unauthorized"}`}}},
			wantStatus: model.StatusFailed,
			wantError:  `{"message":"Unauthorized"}`,
		},
		{
			name:       "未配置 AI",
			gen:        &fakeGenerator{err: response.NotFoundError("Chưa cấu hình AI")},
			wantStatus: model.StatusFailed,
			wantError:  "Chưa cấu hình AI",
		},
		{
			name:       "底层错误保留原因",
			gen:        &fakeGenerator{err: errors.New("dial tcp 10.0.0.1:443: i/o timeout")},
			wantStatus: model.StatusFailed,
			wantError:  "Lỗi hệ thống: dial tcp 10.0.0.1:443: i/o timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutils.SetupTestDB(t)
			user := testutils.CreateTestUser(db)
			svc := NewService(db, tt.gen)

			job, err := svc.Create(context.Background(), user.ID, CreateRequest{Keyword: "xe điện", SourceContent: "<p>Doanh số xe điện tăng</p>"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, job.Status)
			assert.Equal(t, tt.wantError, job.ErrorMessage)

			stored, err := svc.Get(context.Background(), job.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, stored.Status)

			require.Len(t, tt.gen.prompts, 1)
			assert.Contains(t, tt.gen.prompts[0], `"xe điện"`)
			assert.Contains(t, tt.gen.prompts[0], "Doanh số xe điện tăng")
		})
	}
}

// 生成过程中请求被取消
type cancelingGenerator struct {
	cancel context.CancelFunc
}

func (g *cancelingGenerator) Generate(ctx context.Context, _ string) (aigateway.Result, aigateway.Settings, error) {
	g.cancel()
	return aigateway.Result{}, aigateway.Settings{}, ctx.Err()
}

func TestCreateClientGoneStillRecordsFailure(t *testing.T) {
	db := testutils.SetupTestDB(t)
	user := testutils.CreateTestUser(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := NewService(db, &cancelingGenerator{cancel: cancel})

	job, err := svc.Create(ctx, user.ID, CreateRequest{Keyword: "pin mặt trời", SourceContent: "x"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, job.Status)
	assert.Contains(t, job.ErrorMessage, context.Canceled.Error())

	stored, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, stored.Status, "不能停留在 processing")

	svc.generator = &fakeGenerator{results: []aigateway.Result{{Success: true, Content: "<p>ok</p>"}}}
	job, err = svc.Retry(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, job.Status)
}

func TestRetry(t *testing.T) {
	db := testutils.SetupTestDB(t)
	user := testutils.CreateTestUser(db)
	gen := &fakeGenerator{results: []aigateway.Result{{Error: "timeout"}, {Success: true, Content: "ok"}}}
	svc := NewService(db, gen)
	ctx := context.Background()

	job, err := svc.Create(ctx, user.ID, CreateRequest{Keyword: "AI", SourceContent: "x"})
	require.NoError(t, err)
	require.Equal(t, model.StatusFailed, job.Status)

	failures, err := svc.RecentFailures(ctx, 5)
	require.NoError(t, err)
	assert.NotEmpty(t, failures)

	job, err = svc.Retry(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, job.Status)
	assert.Equal(t, "ok", job.RewrittenContent)
	assert.Empty(t, job.ErrorMessage)

	_, err = svc.Retry(ctx, job.ID)
	assert.Equal(t, response.InvalidParameter, response.AsBusinessError(err).Code, "已完成的任务不能重试")

	require.NoError(t, svc.Delete(ctx, job.ID))
	err = svc.Delete(ctx, job.ID)
	assert.Equal(t, response.NotFound, response.AsBusinessError(err).Code)
}
