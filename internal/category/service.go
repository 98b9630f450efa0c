package category

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"terminal-terrace/ai-magazine/internal/cache"
	model "terminal-terrace/ai-magazine/internal/model/category"
	"terminal-terrace/ai-magazine/internal/pkg/slug"
	"terminal-terrace/ai-magazine/packages/response"

	"gorm.io/gorm"
)

const treeCacheKey = "categories:tree"

type Service struct {
	repo  *Repository
	cache *cache.Store
}

func NewService(db *gorm.DB, store *cache.Store) *Service {
	return &Service{repo: NewRepository(db), cache: store}
}

func notFound() *response.BusinessError {
	return response.NotFoundError("Không tìm thấy danh mục")
}

func fieldError(field, msg string) *response.BusinessError {
	return response.ValidationError(msg, map[string][]string{field: {msg}})
}

func (s *Service) List(ctx context.Context) ([]model.Category, error) {
	items, err := s.repo.List(ctx)
	if items == nil {
		items = []model.Category{}
	}
	return items, err
}

// Tree 两级分类树（带缓存）
func (s *Service) Tree(ctx context.Context) ([]model.Category, error) {
	return cache.Remember(ctx, s.cache, treeCacheKey, func(ctx context.Context) ([]model.Category, error) {
		items, err := s.repo.Roots(ctx)
		if items == nil {
			items = []model.Category{}
		}
		return items, err
	})
}

func (s *Service) Get(ctx context.Context, id uint) (*model.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound()
	}
	return c, err
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*model.Category, error) {
	source := req.Slug
	if strings.TrimSpace(source) == "" {
		source = req.Name
	}
	c := &model.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug.Make(source),
		Description: req.Description,
	}
	if err := s.checkSlug(ctx, c.Slug, 0); err != nil {
		return nil, err
	}
	if req.ParentID != nil && *req.ParentID != 0 {
		if err := s.checkParent(ctx, *req.ParentID, 0); err != nil {
			return nil, err
		}
		c.ParentID = req.ParentID
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Forget(ctx, treeCacheKey)
	slog.Info("分类已创建", "op", "category.Create", "category_id", c.ID)
	return c, nil
}

func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (*model.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil {
		newSlug := slug.Make(*req.Slug)
		if err := s.checkSlug(ctx, newSlug, c.ID); err != nil {
			return nil, err
		}
		c.Slug = newSlug
	}
	if req.ParentID != nil {
		if *req.ParentID == 0 {
			c.ParentID = nil
		} else {
			if err := s.checkParent(ctx, *req.ParentID, c.ID); err != nil {
				return nil, err
			}
			if len(c.Children) > 0 {
				return nil, fieldError("parent_id", "Danh mục có danh mục con không thể trở thành danh mục con")
			}
			c.ParentID = req.ParentID
		}
	}
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		c.Description = *req.Description
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Forget(ctx, treeCacheKey)
	return c, nil
}

// Delete 有子分类时拒绝删除
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return response.ValidationError("Không thể xóa danh mục đang có danh mục con", nil)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Forget(ctx, treeCacheKey)
	return nil
}

func (s *Service) checkSlug(ctx context.Context, value string, excludeID uint) error {
	if value == "" {
		return fieldError("slug", "Slug không hợp lệ")
	}
	taken, err := s.repo.SlugTaken(ctx, value, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fieldError("slug", "Slug danh mục đã tồn tại")
	}
	return nil
}

// checkParent 父分类必须存在、不能是自己，且只支持两级
func (s *Service) checkParent(ctx context.Context, parentID, selfID uint) error {
	if parentID == selfID {
		return fieldError("parent_id", "Danh mục cha không thể là chính nó")
	}
	parent, err := s.repo.GetByID(ctx, parentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fieldError("parent_id", "Danh mục cha không tồn tại")
	}
	if err != nil {
		return err
	}
	if parent.ParentID != nil {
		return fieldError("parent_id", "Chỉ hỗ trợ hai cấp danh mục")
	}
	return nil
}
