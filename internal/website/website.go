package website

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"terminal-terrace/ai-magazine/internal/cache"
	model "terminal-terrace/ai-magazine/internal/model/website"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const cacheKey = "website:config"

// UpdateRequest nil 字段保持不变
type UpdateRequest struct {
	SiteName     *string `json:"site_name" binding:"omitempty,max=255"`
	Description  *string `json:"description"`
	Logo         *string `json:"logo" binding:"omitempty,max=512"`
	Favicon      *string `json:"favicon" binding:"omitempty,max=512"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email,max=255"`
	FooterText   *string `json:"footer_text"`

	SocialLinks map[string]string `json:"social_links"`
}

type Service struct {
	db          *gorm.DB
	cache       *cache.Store
	defaultName string
}

func NewService(db *gorm.DB, store *cache.Store, defaultName string) *Service {
	return &Service{db: db, cache: store, defaultName: defaultName}
}

// Get 未保存过时返回默认配置
func (s *Service) Get(ctx context.Context) (*model.Config, error) {
	return cache.Remember(ctx, s.cache, cacheKey, func(ctx context.Context) (*model.Config, error) {
		cfg, err := s.first(ctx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.Config{SiteName: s.defaultName, SocialLinks: datatypes.JSON("{}")}, nil
		}
		return cfg, err
	})
}

func (s *Service) first(ctx context.Context) (*model.Config, error) {
	var cfg model.Config
	if err := s.db.WithContext(ctx).Order("id").First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Update 单例：无记录时创建
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*model.Config, error) {
	cfg, err := s.first(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = &model.Config{SiteName: s.defaultName, SocialLinks: datatypes.JSON("{}")}
	} else if err != nil {
		return nil, err
	}

	if req.SiteName != nil {
		cfg.SiteName = *req.SiteName
	}
	if req.Description != nil {
		cfg.Description = *req.Description
	}
	if req.Logo != nil {
		cfg.Logo = *req.Logo
	}
	if req.Favicon != nil {
		cfg.Favicon = *req.Favicon
	}
	if req.ContactEmail != nil {
		cfg.ContactEmail = *req.ContactEmail
	}
	if req.FooterText != nil {
		cfg.FooterText = *req.FooterText
	}
	if req.SocialLinks != nil {
		links, err := json.Marshal(req.SocialLinks)
		if err != nil {
			return nil, err
		}
		cfg.SocialLinks = datatypes.JSON(links)
	}

	if err := s.db.WithContext(ctx).Save(cfg).Error; err != nil {
		return nil, err
	}
	s.cache.Forget(ctx, cacheKey)
	slog.Info("网站配置已更新", "op", "website.Update")
	return cfg, nil
}
