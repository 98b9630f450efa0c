package user

import (
	"context"
	"testing"

	"terminal-terrace/ai-magazine/internal/testutils"
	"terminal-terrace/ai-magazine/packages/authsdk"
	"terminal-terrace/ai-magazine/packages/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateAndUpdate(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	email := "Editor." + uuid.NewString()[:8] + "@Example.com"

	u, err := svc.Create(ctx, CreateRequest{Name: " Biên tập ", Email: email, Password: "matkhau123", Role: authsdk.RoleEditor})
	require.NoError(t, err)
	assert.Equal(t, "Biên tập", u.Name)
	assert.Equal(t, "active", u.Status)
	assert.NotEqual(t, "matkhau123", u.PasswordHash)

	found, err := svc.Repository().GetByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID, "邮箱不区分大小写")

	role := authsdk.RoleAdmin
	password := "matkhaumoi456"
	updated, err := svc.Update(ctx, u.ID, UpdateRequest{Role: &role, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, authsdk.RoleAdmin, updated.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(password)))

	page, err := svc.List(ctx, ListQuery{Search: email[:12], Role: authsdk.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	// 唯一索引冲突会中止事务，放在最后
	_, err = svc.Create(ctx, CreateRequest{Name: "Trùng", Email: email, Password: "matkhau123", Role: authsdk.RoleUser})
	require.Error(t, err)
	be := response.AsBusinessError(err)
	assert.Equal(t, response.InvalidParameter, be.Code)
	assert.Equal(t, EmailTakenMessage, be.Msg)
}

func TestDelete(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	admin := testutils.CreateTestUser(db, testutils.WithRole(authsdk.RoleAdmin))
	target := testutils.CreateTestUser(db)
	current := &authsdk.UserContext{UserID: admin.ID, Role: authsdk.RoleAdmin}

	tests := []struct {
		name     string
		id       uint
		wantCode response.ResponseCode
		wantErr  bool
	}{
		{name: "不能删除自己", id: admin.ID, wantErr: true, wantCode: response.InvalidParameter},
		{name: "不存在", id: 999999, wantErr: true, wantCode: response.NotFound},
		{name: "删除其他用户", id: target.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Delete(ctx, tt.id, current)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, response.AsBusinessError(err).Code)
				return
			}
			require.NoError(t, err)
		})
	}
}
