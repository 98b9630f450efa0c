package auth

import (
	"context"
	"testing"
	"time"

	"terminal-terrace/ai-magazine/internal/testutils"
	"terminal-terrace/ai-magazine/packages/authsdk"
	"terminal-terrace/ai-magazine/packages/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing-only"

func TestLogin(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewService(db, testSecret, time.Hour)
	active := testutils.CreateTestUser(db, testutils.WithRole(authsdk.RoleEditor))
	locked := testutils.CreateTestUser(db, testutils.WithStatus("inactive"))

	tests := []struct {
		name     string
		req      LoginRequest
		wantCode response.ResponseCode
		wantErr  bool
	}{
		{name: "登录成功", req: LoginRequest{Email: active.Email, Password: "password123"}},
		{name: "密码错误", req: LoginRequest{Email: active.Email, Password: "wrong"}, wantErr: true, wantCode: response.Unauthorized},
		{name: "用户不存在", req: LoginRequest{Email: "nobody@example.com", Password: "password123"}, wantErr: true, wantCode: response.Unauthorized},
		{name: "账号已停用", req: LoginRequest{Email: locked.Email, Password: "password123"}, wantErr: true, wantCode: response.Forbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, response.AsBusinessError(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 3600, result.ExpiresIn)

			claims, err := authsdk.ParseToken(result.AccessToken, testSecret)
			require.NoError(t, err)
			assert.Equal(t, active.ID, claims.UserID)
			assert.Equal(t, authsdk.RoleEditor, claims.Role)
		})
	}
}

func TestRegister(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewService(db, testSecret, time.Hour)
	ctx := context.Background()
	email := "docgia." + uuid.NewString()[:8] + "@example.com"

	result, err := svc.Register(ctx, RegisterRequest{Name: "Độc giả", Email: email, Password: "matkhau123"})
	require.NoError(t, err)
	assert.Equal(t, authsdk.RoleUser, result.User.Role)

	me, err := svc.Me(ctx, result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, email, me.Email)

	_, err = svc.Login(ctx, LoginRequest{Email: email, Password: "matkhau123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Trùng", Email: email, Password: "matkhau123"})
	require.Error(t, err)
	assert.Equal(t, response.InvalidParameter, response.AsBusinessError(err).Code)
}
