package media

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"terminal-terrace/ai-magazine/internal/dto"
	model "terminal-terrace/ai-magazine/internal/model/media"
	"terminal-terrace/ai-magazine/packages/authsdk"
	"terminal-terrace/ai-magazine/packages/response"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const mediaDir = "media"

// 允许上传的类型
var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"video/mp4":       ".mp4",
	"application/pdf": ".pdf",
}

// Options 存储位置
type Options struct {
	PrivateDir string
	PublicURL  string
	MaxBytes   int64
}

type Service struct {
	repo *Repository
	opts Options
}

func NewService(db *gorm.DB, opts Options) *Service {
	opts.PublicURL = strings.TrimRight(opts.PublicURL, "/")
	return &Service{repo: NewRepository(db), opts: opts}
}

func notFound() *response.BusinessError {
	return response.NotFoundError("Không tìm thấy tệp")
}

func (s *Service) withURL(m *model.Media) *model.Media {
	m.URL = s.opts.PublicURL + "/" + path.Clean(filepath.ToSlash(m.FilePath))
	return m
}

// Upload 写入 private_dir/media/YYYY/MM/<uuid><ext>；同一用户的相同内容直接复用
func (s *Service) Upload(ctx context.Context, userID uint, fileName, category string, src io.Reader) (*model.Media, bool, error) {
	// 多读 1 字节用于判断是否超限
	limited := io.LimitReader(src, s.opts.MaxBytes+1)

	head := make([]byte, 512)
	n, err := io.ReadFull(limited, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, false, err
	}
	head = head[:n]
	if n == 0 {
		return nil, false, response.ValidationError("Tệp rỗng", map[string][]string{"file": {"Tệp rỗng"}})
	}
	mimeType := strings.Split(http.DetectContentType(head), ";")[0]
	ext, ok := allowedTypes[mimeType]
	if !ok {
		return nil, false, response.ValidationError("Định dạng tệp không được hỗ trợ", map[string][]string{"file": {mimeType}})
	}

	now := time.Now()
	relDir := filepath.Join(mediaDir, now.Format("2006"), now.Format("01"))
	absDir := filepath.Join(s.opts.PrivateDir, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, false, fmt.Errorf("create media dir: %w", err)
	}

	tmp, err := os.CreateTemp(absDir, ".upload-*")
	if err != nil {
		return nil, false, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(tmp, hasher), io.MultiReader(bytes.NewReader(head), limited))
	closeErr := tmp.Close()
	if err != nil {
		return nil, false, fmt.Errorf("write upload: %w", err)
	}
	if closeErr != nil {
		return nil, false, closeErr
	}
	if size > s.opts.MaxBytes {
		msg := fmt.Sprintf("Tệp vượt quá %d MB", s.opts.MaxBytes>>20)
		return nil, false, response.ValidationError(msg, map[string][]string{"file": {msg}})
	}
	hash := hex.EncodeToString(hasher.Sum(nil))

	existing, err := s.repo.FindByHash(ctx, userID, hash)
	if err == nil {
		return s.withURL(existing), true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	relPath := filepath.Join(relDir, uuid.NewString()+ext)
	if err := os.Rename(tmp.Name(), filepath.Join(s.opts.PrivateDir, relPath)); err != nil {
		return nil, false, fmt.Errorf("move upload: %w", err)
	}

	if category == "" {
		category = "general"
	}
	m := &model.Media{
		UserID:   userID,
		FileName: filepath.Base(fileName),
		FilePath: filepath.ToSlash(relPath),
		FileHash: hash,
		MimeType: mimeType,
		FileSize: size,
		Category: category,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		os.Remove(filepath.Join(s.opts.PrivateDir, relPath))
		return nil, false, err
	}
	slog.Info("文件已上传", "op", "media.Upload", "media_id", m.ID, "user_id", userID, "size", size)
	return s.withURL(m), false, nil
}

// List 普通用户只看自己的
func (s *Service) List(ctx context.Context, current *authsdk.UserContext, q ListQuery) (dto.Page[model.Media], error) {
	q.Normalize()
	var owner uint
	if !current.IsAdmin() {
		owner = current.UserID
	}
	items, total, err := s.repo.List(ctx, owner, q)
	if err != nil {
		return dto.Page[model.Media]{}, err
	}
	for i := range items {
		s.withURL(&items[i])
	}
	return dto.NewPage(items, total, q.PageQuery), nil
}

// Delete 上传者或管理员可删除，同时移除磁盘文件
func (s *Service) Delete(ctx context.Context, current *authsdk.UserContext, id uint) error {
	m, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound()
	}
	if err != nil {
		return err
	}
	if m.UserID != current.UserID && !current.IsAdmin() {
		return response.ForbiddenError("Bạn không có quyền xóa tệp này")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	full := filepath.Join(s.opts.PrivateDir, filepath.FromSlash(m.FilePath))
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("删除文件失败", "op", "media.Delete", "media_id", id, "path", full, "error", err)
	}
	return nil
}
