package config

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// SwagInitArgs swag init 参数，输出到 docs 目录
var SwagInitArgs = []string{
	"run",
	"github.com/swaggo/swag/cmd/swag@latest",
	"init",
	"-g",
	"cmd/server/main.go",
	"-o",
	"docs",
	"--parseDependency",
	"--parseInternal",
}

// PublishDocs 重新生成 swagger 文档
// 带超时运行，避免卡住整个进程
func PublishDocs(ctx context.Context, timeout time.Duration) error {
	slog.Info("开始生成 swagger 文档")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "go", SwagInitArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run swag init: %w; stdout: %s; stderr: %s", err, strings.TrimSpace(stdout.String()), strings.TrimSpace(stderr.String()))
	}

	slog.Info("swag init completed")
	return nil
}
