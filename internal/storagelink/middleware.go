package storagelink

import (
	"log/slog"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// mediaExtensions 看起来像媒体文件的扩展名
var mediaExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true,
	".avif": true, ".bmp": true, ".ico": true, ".mp4": true, ".webm": true, ".mp3": true,
	".pdf": true,
}

// IsMediaPath 是否需要触发链接检查
func IsMediaPath(urlPath, publicPrefix string) bool {
	if publicPrefix != "" && strings.HasPrefix(urlPath, strings.TrimRight(publicPrefix, "/")+"/") {
		return true
	}
	return mediaExtensions[strings.ToLower(path.Ext(urlPath))]
}

// Middleware 媒体请求到达前检查链接；cooldown 内只检查一次
func Middleware(g *Guardian, publicPrefix string, cooldown time.Duration) gin.HandlerFunc {
	var last atomic.Int64
	return func(c *gin.Context) {
		if !IsMediaPath(c.Request.URL.Path, publicPrefix) {
			c.Next()
			return
		}

		now := time.Now().UnixNano()
		prev := last.Load()
		if now-prev >= int64(cooldown) && last.CompareAndSwap(prev, now) {
			if _, err := g.Ensure(); err != nil {
				slog.Error("存储链接检查失败", "op", "storagelink.Middleware", "path", c.Request.URL.Path, "error", err)
			}
		}
		c.Next()
	}
}
