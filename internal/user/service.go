package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"terminal-terrace/ai-magazine/internal/dto"
	model "terminal-terrace/ai-magazine/internal/model/user"
	"terminal-terrace/ai-magazine/packages/authsdk"
	"terminal-terrace/ai-magazine/packages/database"
	"terminal-terrace/ai-magazine/packages/response"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EmailTakenMessage 邮箱重复
const EmailTakenMessage = "Email đã được sử dụng"

type Service struct {
	repo *Repository
}

func NewService(db *gorm.DB) *Service {
	return &Service{repo: NewRepository(db)}
}

// HashPassword bcrypt 加密
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func notFound() *response.BusinessError {
	return response.NotFoundError("Không tìm thấy người dùng")
}

func emailTaken() *response.BusinessError {
	return response.ValidationError(EmailTakenMessage, map[string][]string{"email": {EmailTakenMessage}})
}

func (s *Service) List(ctx context.Context, q ListQuery) (dto.Page[model.User], error) {
	q.Normalize()
	users, total, err := s.repo.List(ctx, q)
	if err != nil {
		return dto.Page[model.User]{}, err
	}
	return dto.NewPage(users, total, q.PageQuery), nil
}

func (s *Service) Get(ctx context.Context, id uint) (*model.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound()
	}
	return u, err
}

// Create 邮箱唯一索引冲突转换为 422
func (s *Service) Create(ctx context.Context, req CreateRequest) (*model.User, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = model.StatusActive
	}
	u := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         req.Role,
		Status:       status,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, emailTaken()
		}
		return nil, err
	}
	slog.Info("用户已创建", "op", "user.Create", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Password != nil {
		if u.PasswordHash, err = HashPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Status != nil {
		u.Status = *req.Status
	}

	if err := s.repo.Save(ctx, u); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, emailTaken()
		}
		return nil, err
	}
	return u, nil
}

// Delete 不能删除自己
func (s *Service) Delete(ctx context.Context, id uint, current *authsdk.UserContext) error {
	if current != nil && current.UserID == id {
		return response.ValidationError("Không thể xóa tài khoản của chính bạn", nil)
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("用户已删除", "op", "user.Delete", "user_id", id)
	return nil
}

// Repository 供认证与统计复用
func (s *Service) Repository() *Repository {
	return s.repo
}
