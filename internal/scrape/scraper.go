package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"terminal-terrace/ai-magazine/internal/article"

	readability "github.com/go-shiori/go-readability"
)

const (
	userAgent   = "AIMagazine/1.0 (+scraper)"
	maxBodySize = 5 << 20
)

// Scraper 抓取新闻页面并提取正文
type Scraper struct {
	client *http.Client
}

// New client 为空时使用 20 秒超时的默认客户端
func New(client *http.Client) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Scraper{client: client}
}

// Scrape 下载页面并用 readability 提取标题、正文、摘要与封面
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*article.ImportItem, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %s", pageURL.Host, resp.Status)
	}

	parsed, err := readability.FromReader(io.LimitReader(resp.Body, maxBodySize), pageURL)
	if err != nil {
		return nil, fmt.Errorf("extract article: %w", err)
	}
	if strings.TrimSpace(parsed.Content) == "" {
		return nil, fmt.Errorf("no readable content at %s", pageURL)
	}

	sourceName := parsed.SiteName
	if sourceName == "" {
		sourceName = strings.TrimPrefix(pageURL.Hostname(), "www.")
	}

	return &article.ImportItem{
		Title:         strings.TrimSpace(parsed.Title),
		Summary:       strings.TrimSpace(parsed.Excerpt),
		Content:       parsed.Content,
		SourceName:    sourceName,
		SourceURL:     pageURL.String(),
		FeaturedImage: parsed.Image,
	}, nil
}
