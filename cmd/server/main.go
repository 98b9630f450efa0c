package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"terminal-terrace/ai-magazine/config"
	_ "terminal-terrace/ai-magazine/docs"
	"terminal-terrace/ai-magazine/internal/database"
	"terminal-terrace/ai-magazine/internal/logging"
	"terminal-terrace/ai-magazine/internal/route"
	"terminal-terrace/ai-magazine/internal/storagelink"
)

// @title AI Magazine API
// @version 1.0
// @description Hệ thống quản lý tạp chí với nội dung viết lại bằng AI
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	config.MustLoad("config.yaml")
	logging.Setup(config.Conf.Log.Level, config.Conf.Log.Format)

	// 2. 初始化数据库
	if err := database.InitDatabase(); err != nil {
		slog.Error("数据库初始化失败", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// 3. 存储链接定时检查
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	guardian := storagelink.NewGuardian(config.Conf.Storage.PrivateDir, config.Conf.Storage.PublicLink)
	scheduler := storagelink.NewScheduler(guardian, config.Conf.Storage.CheckEvery())
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// 4. 设置路由
	r := route.SetupRouter(route.Deps{
		DB:       database.PostgresDB,
		Redis:    database.RedisDB,
		Guardian: guardian,
	})

	// 5. 启动服务
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port),
		Handler:      r,
		ReadTimeout:  config.Conf.Server.ReadTimeout,
		WriteTimeout: config.Conf.Server.WriteTimeout,
	}

	go func() {
		slog.Info("服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("服务异常退出", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("正在关闭服务")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("服务关闭失败", "error", err)
	}
}
