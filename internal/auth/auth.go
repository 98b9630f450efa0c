package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	model "terminal-terrace/ai-magazine/internal/model/user"
	"terminal-terrace/ai-magazine/internal/user"
	"terminal-terrace/ai-magazine/packages/authsdk"
	"terminal-terrace/ai-magazine/packages/database"
	"terminal-terrace/ai-magazine/packages/response"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginRequest 邮箱密码登录
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册普通用户
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// TokenResponse 登录结果
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	User        *model.User `json:"user"`
}

const invalidCredentials = "Email hoặc mật khẩu không đúng"

type Service struct {
	users  *user.Repository
	secret string
	ttl    time.Duration
}

func NewService(db *gorm.DB, secret string, ttl time.Duration) *Service {
	return &Service{users: user.NewRepository(db), secret: secret, ttl: ttl}
}

// Login 校验密码并签发访问令牌；停用账号不可登录
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.UnauthorizedError(invalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, response.UnauthorizedError(invalidCredentials)
	}
	if !u.IsActive() {
		return nil, response.ForbiddenError("Tài khoản đã bị khóa")
	}

	return s.issue(u)
}

// Register 新用户角色固定为 user
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	hash, err := user.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         authsdk.RoleUser,
		Status:       model.StatusActive,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, response.ValidationError(user.EmailTakenMessage, map[string][]string{"email": {user.EmailTakenMessage}})
		}
		return nil, err
	}
	slog.Info("新用户注册", "op", "auth.Register", "user_id", u.ID)
	return s.issue(u)
}

// Me 读取最新的用户资料
func (s *Service) Me(ctx context.Context, id uint) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.UnauthorizedError("Tài khoản không tồn tại")
	}
	return u, err
}

// TTL 令牌有效期，用于设置 cookie
func (s *Service) TTL() time.Duration {
	return s.ttl
}

func (s *Service) issue(u *model.User) (*TokenResponse, error) {
	token, err := authsdk.GenerateToken(authsdk.UserContext{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	}, s.secret, s.ttl)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorMessage("Không thể tạo phiên đăng nhập"),
			response.WithError(err),
		)
	}
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.ttl.Seconds()),
		User:        u,
	}, nil
}
