package storagelink

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const probePrefix = ".storage-link-probe-"

// ErrLinkBroken 重建后公开路径仍无法读到探针文件
var ErrLinkBroken = errors.New("storage link still broken after relink")

// Guardian 检查并修复 PublicLink -> PrivateDir 的符号链接
type Guardian struct {
	PrivateDir string
	PublicLink string
}

func NewGuardian(privateDir, publicLink string) *Guardian {
	return &Guardian{PrivateDir: privateDir, PublicLink: publicLink}
}

// Check 在私有目录写探针文件，再从公开路径读回比对；探针文件总会被删除
func (g *Guardian) Check() (bool, error) {
	if err := os.MkdirAll(g.PrivateDir, 0o755); err != nil {
		return false, fmt.Errorf("create private dir: %w", err)
	}

	name := probePrefix + uuid.NewString()
	want := []byte(uuid.NewString())
	privatePath := filepath.Join(g.PrivateDir, name)

	if err := os.WriteFile(privatePath, want, 0o644); err != nil {
		return false, fmt.Errorf("write probe: %w", err)
	}
	defer os.Remove(privatePath)

	got, err := os.ReadFile(filepath.Join(g.PublicLink, name))
	if err != nil {
		return false, nil
	}
	return bytes.Equal(got, want), nil
}

// Ensure 链接失效时重建，返回是否发生了重建
func (g *Guardian) Ensure() (bool, error) {
	ok, err := g.Check()
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}

	slog.Warn("存储链接失效，开始重建", "op", "storagelink.Ensure", "public", g.PublicLink, "private", g.PrivateDir)
	if err := g.relink(); err != nil {
		return false, err
	}

	ok, err = g.Check()
	if err != nil {
		return true, err
	}
	if !ok {
		return true, ErrLinkBroken
	}
	slog.Info("存储链接已重建", "op", "storagelink.Ensure", "public", g.PublicLink)
	return true, nil
}

// relink 删除旧的公开入口后重新创建符号链接
func (g *Guardian) relink() error {
	if err := g.removeStale(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(g.PublicLink), 0o755); err != nil {
		return fmt.Errorf("create public parent: %w", err)
	}

	target, err := g.linkTarget()
	if err != nil {
		return err
	}
	// 并发请求可能同时重建，已存在视为成功
	if err := os.Symlink(target, g.PublicLink); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("create symlink: %w", err)
	}
	return nil
}

// removeStale 符号链接或普通文件直接删除；真实目录改名备份，不删除其中数据
func (g *Guardian) removeStale() error {
	info, err := os.Lstat(g.PublicLink)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat public link: %w", err)
	}

	if info.IsDir() {
		backup := fmt.Sprintf("%s.bak-%d", g.PublicLink, time.Now().Unix())
		slog.Warn("公开路径是真实目录，改名备份", "op", "storagelink.removeStale", "backup", backup)
		if err := os.Rename(g.PublicLink, backup); err != nil {
			return fmt.Errorf("backup public dir: %w", err)
		}
		return nil
	}

	if err := os.Remove(g.PublicLink); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove stale link: %w", err)
	}
	return nil
}

// linkTarget 优先使用相对路径，便于整体迁移目录
func (g *Guardian) linkTarget() (string, error) {
	absPrivate, err := filepath.Abs(g.PrivateDir)
	if err != nil {
		return "", err
	}
	absParent, err := filepath.Abs(filepath.Dir(g.PublicLink))
	if err != nil {
		return "", err
	}
	if rel, err := filepath.Rel(absParent, absPrivate); err == nil {
		return rel, nil
	}
	return absPrivate, nil
}
