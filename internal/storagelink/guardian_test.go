package storagelink

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardian(t *testing.T) *Guardian {
	t.Helper()
	root := t.TempDir()
	return NewGuardian(filepath.Join(root, "storage", "app", "public"), filepath.Join(root, "public", "storage"))
}

func assertNoProbeLeft(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), probePrefix), "探针文件未清理: %s", e.Name())
	}
}

func assertLinked(t *testing.T, g *Guardian) {
	t.Helper()
	info, err := os.Lstat(g.PublicLink)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "公开路径应为符号链接")

	ok, err := g.Check()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnsureCreatesMissingLink(t *testing.T) {
	g := newGuardian(t)

	ok, err := g.Check()
	require.NoError(t, err)
	assert.False(t, ok)

	relinked, err := g.Ensure()
	require.NoError(t, err)
	assert.True(t, relinked)
	assertLinked(t, g)
	assertNoProbeLeft(t, g.PrivateDir)
}

func TestEnsureHealthyLinkIsNoop(t *testing.T) {
	g := newGuardian(t)
	_, err := g.Ensure()
	require.NoError(t, err)

	relinked, err := g.Ensure()
	require.NoError(t, err)
	assert.False(t, relinked)
	assertNoProbeLeft(t, g.PrivateDir)
}

func TestEnsureReplacesStaleEntries(t *testing.T) {
	tests := []struct {
		name  string
		stale func(t *testing.T, g *Guardian)
	}{
		{
			name: "悬空链接",
			stale: func(t *testing.T, g *Guardian) {
				require.NoError(t, os.MkdirAll(filepath.Dir(g.PublicLink), 0o755))
				require.NoError(t, os.Symlink(filepath.Join(t.TempDir(), "gone"), g.PublicLink))
			},
		},
		{
			name: "指向错误目录",
			stale: func(t *testing.T, g *Guardian) {
				require.NoError(t, os.MkdirAll(filepath.Dir(g.PublicLink), 0o755))
				require.NoError(t, os.Symlink(t.TempDir(), g.PublicLink))
			},
		},
		{
			name: "普通文件",
			stale: func(t *testing.T, g *Guardian) {
				require.NoError(t, os.MkdirAll(filepath.Dir(g.PublicLink), 0o755))
				require.NoError(t, os.WriteFile(g.PublicLink, []byte("x"), 0o644))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGuardian(t)
			tt.stale(t, g)

			relinked, err := g.Ensure()
			require.NoError(t, err)
			assert.True(t, relinked)
			assertLinked(t, g)
			assertNoProbeLeft(t, g.PrivateDir)
		})
	}
}

func TestEnsureBacksUpRealDirectory(t *testing.T) {
	g := newGuardian(t)
	require.NoError(t, os.MkdirAll(g.PublicLink, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(g.PublicLink, "keep.txt"), []byte("data"), 0o644))

	relinked, err := g.Ensure()
	require.NoError(t, err)
	assert.True(t, relinked)
	assertLinked(t, g)

	matches, err := filepath.Glob(g.PublicLink + ".bak-*")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(filepath.Join(matches[0], "keep.txt"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestIsMediaPath(t *testing.T) {
	assert.True(t, IsMediaPath("/storage/media/2025/01/a.bin", "/storage"))
	assert.True(t, IsMediaPath("/uploads/a.JPG", "/storage"))
	assert.False(t, IsMediaPath("/api/articles", "/storage"))
	assert.False(t, IsMediaPath("/storagefoo", "/storage"))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := newGuardian(t)

	r := gin.New()
	r.Use(Middleware(g, "/storage", time.Hour))
	r.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/storage/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	_, err := os.Lstat(g.PublicLink)
	assert.True(t, os.IsNotExist(err), "非媒体请求不检查")

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/storage/a.png", nil))
	assertLinked(t, g)

	// cooldown 内不再检查
	require.NoError(t, os.Remove(g.PublicLink))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/storage/b.png", nil))
	_, err = os.Lstat(g.PublicLink)
	assert.True(t, os.IsNotExist(err))
}

func TestSchedulerRunsImmediately(t *testing.T) {
	g := newGuardian(t)
	s := NewScheduler(g, time.Hour)

	s.Start(context.Background())
	s.Start(context.Background())

	assert.Eventually(t, func() bool {
		_, err := os.Lstat(g.PublicLink)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	s.Stop()
	s.Stop()
}
