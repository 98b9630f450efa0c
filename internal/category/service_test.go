package category

import (
	"context"
	"testing"
	"time"

	"terminal-terrace/ai-magazine/internal/cache"
	"terminal-terrace/ai-magazine/internal/testutils"
	"terminal-terrace/ai-magazine/packages/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*Service, context.Context) {
	t.Helper()
	db := testutils.SetupTestDB(t)
	// 测试在事务内进行，不走 Redis
	return NewService(db, cache.New(nil, time.Minute)), context.Background()
}

func TestCreate(t *testing.T) {
	svc, ctx := newService(t)
	name := "Trí tuệ nhân tạo " + uuid.NewString()[:8]

	root, err := svc.Create(ctx, CreateRequest{Name: name})
	require.NoError(t, err)
	assert.Contains(t, root.Slug, "tri-tue-nhan-tao-")

	tests := []struct {
		name      string
		req       CreateRequest
		wantField string
	}{
		{name: "slug 重复", req: CreateRequest{Name: "X", Slug: root.Slug}, wantField: "slug"},
		{name: "父分类不存在", req: CreateRequest{Name: "Y " + uuid.NewString(), ParentID: ptr(999999)}, wantField: "parent_id"},
		{name: "空 slug", req: CreateRequest{Name: "!!!"}, wantField: "slug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			require.Error(t, err)
			be := response.AsBusinessError(err)
			assert.Equal(t, response.InvalidParameter, be.Code)
			assert.Contains(t, be.Fields, tt.wantField)
		})
	}

	child, err := svc.Create(ctx, CreateRequest{Name: "Con " + uuid.NewString()[:8], ParentID: &root.ID})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Name: "Cháu " + uuid.NewString()[:8], ParentID: &child.ID})
	assert.Equal(t, response.InvalidParameter, response.AsBusinessError(err).Code, "只支持两级")
}

func TestTreeAndDelete(t *testing.T) {
	svc, ctx := newService(t)
	root, err := svc.Create(ctx, CreateRequest{Name: "Gốc " + uuid.NewString()[:8]})
	require.NoError(t, err)
	child, err := svc.Create(ctx, CreateRequest{Name: "Con " + uuid.NewString()[:8], ParentID: &root.ID})
	require.NoError(t, err)

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	var found bool
	for _, c := range tree {
		if c.ID == root.ID {
			found = true
			require.Len(t, c.Children, 1)
			assert.Equal(t, child.ID, c.Children[0].ID)
		}
	}
	assert.True(t, found)

	err = svc.Delete(ctx, root.ID)
	assert.Equal(t, response.InvalidParameter, response.AsBusinessError(err).Code, "有子分类不能删除")

	require.NoError(t, svc.Delete(ctx, child.ID))
	require.NoError(t, svc.Delete(ctx, root.ID))

	_, err = svc.Get(ctx, root.ID)
	assert.Equal(t, response.NotFound, response.AsBusinessError(err).Code)
}

func TestUpdateParent(t *testing.T) {
	svc, ctx := newService(t)
	a, err := svc.Create(ctx, CreateRequest{Name: "A " + uuid.NewString()[:8]})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateRequest{Name: "B " + uuid.NewString()[:8]})
	require.NoError(t, err)

	_, err = svc.Update(ctx, a.ID, UpdateRequest{ParentID: &a.ID})
	assert.Equal(t, response.InvalidParameter, response.AsBusinessError(err).Code)

	updated, err := svc.Update(ctx, b.ID, UpdateRequest{ParentID: &a.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, a.ID, *updated.ParentID)

	updated, err = svc.Update(ctx, b.ID, UpdateRequest{ParentID: ptr(0)})
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID)
}

func ptr(v uint) *uint { return &v }
