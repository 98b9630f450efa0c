package approved

import (
	"context"
	"fmt"
	"strings"
	"time"

	"terminal-terrace/ai-magazine/config"
	"terminal-terrace/ai-magazine/internal/pkg/htmltext"

	"github.com/gorilla/feeds"
)

const (
	defaultFeedLimit = 30
	feedExcerpt      = 500
)

// Feed 生成已发布文章的 RSS 2.0
func (s *Service) Feed(ctx context.Context, cfg config.FeedConfig) (string, error) {
	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	items, err := s.repo.Latest(ctx, limit)
	if err != nil {
		return "", err
	}

	link := strings.TrimRight(cfg.Link, "/")
	feed := &feeds.Feed{
		Title:       cfg.Title,
		Link:        &feeds.Link{Href: link},
		Description: cfg.Description,
		Author:      &feeds.Author{Name: cfg.Author},
		Created:     time.Now(),
	}

	feed.Items = make([]*feeds.Item, 0, len(items))
	for _, a := range items {
		description := a.Summary
		if description == "" {
			description = htmltext.Excerpt(a.Content, feedExcerpt)
		}
		item := &feeds.Item{
			Title:       a.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/articles/%s", link, a.Slug)},
			Id:          fmt.Sprintf("%s/articles/%d", link, a.ID),
			Description: description,
			Created:     a.CreatedAt,
		}
		if a.PublishedAt != nil {
			item.Created = *a.PublishedAt
		}
		feed.Items = append(feed.Items, item)
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("failed to generate RSS: %w", err)
	}
	return rss, nil
}
