package website

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"terminal-terrace/ai-magazine/internal/cache"
	"terminal-terrace/ai-magazine/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAndUpdate(t *testing.T) {
	db := testutils.SetupTestDB(t)
	db.Exec("DELETE FROM website_configs")
	svc := NewService(db, cache.New(nil, time.Minute), "AI Magazine")
	ctx := context.Background()

	cfg, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AI Magazine", cfg.SiteName)
	assert.Zero(t, cfg.ID, "未保存时返回默认值")

	name := "Tạp chí AI"
	updated, err := svc.Update(ctx, UpdateRequest{SiteName: &name, SocialLinks: map[string]string{"facebook": "https://facebook.com/aimag"}})
	require.NoError(t, err)
	assert.NotZero(t, updated.ID)

	footer := "© 2025"
	again, err := svc.Update(ctx, UpdateRequest{FooterText: &footer})
	require.NoError(t, err)
	assert.Equal(t, updated.ID, again.ID, "只保留一条配置")
	assert.Equal(t, name, again.SiteName)

	cfg, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, footer, cfg.FooterText)

	var links map[string]string
	require.NoError(t, json.Unmarshal(cfg.SocialLinks, &links))
	assert.Equal(t, "https://facebook.com/aimag", links["facebook"])
}
