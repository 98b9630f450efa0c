package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresConfig PostgreSQL 配置
type PostgresConfig struct {
	ServiceName     string        // 写入 application_name，便于在 pg_stat_activity 中区分
	Username        string
	Password        string
	Host            string
	Port            int
	Database        string
	SSLMode         bool
	TimeZone        string        // 会话时区，如 Asia/Ho_Chi_Minh
	LogLevel        string        // silent, error, warn, info
	SlowThreshold   time.Duration // 慢查询阈值
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// InitPostgres 连接并 ping，失败时不返回半初始化的连接
func InitPostgres(config *PostgresConfig) (*gorm.DB, error) {
	if config == nil {
		return nil, fmt.Errorf("配置不能为空")
	}
	setDefaults(config)

	db, err := gorm.Open(postgres.Open(BuildDSN(config)), &gorm.Config{
		Logger: newGormLogger(config.LogLevel, config.SlowThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库实例失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("数据库不可用: %w", err)
	}

	slog.Info("数据库连接成功", "service", config.ServiceName, "host", config.Host, "database", config.Database)
	return db, nil
}

func setDefaults(c *PostgresConfig) {
	if c.ServiceName == "" {
		c.ServiceName = "unknown-service"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.TimeZone == "" {
		c.TimeZone = "UTC"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.SlowThreshold == 0 {
		c.SlowThreshold = 500 * time.Millisecond
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 10
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 100
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = time.Hour
	}
}

// BuildDSN key=value 形式的连接字符串
func BuildDSN(c *PostgresConfig) string {
	sslmode := "disable"
	if c.SSLMode {
		sslmode = "require"
	}
	parts := []string{
		"host=" + c.Host,
		"user=" + c.Username,
		"password=" + c.Password,
		"dbname=" + c.Database,
		fmt.Sprintf("port=%d", c.Port),
		"sslmode=" + sslmode,
		"TimeZone=" + c.TimeZone,
	}
	if c.ServiceName != "" {
		parts = append(parts, "application_name="+c.ServiceName)
	}
	return strings.Join(parts, " ")
}

var gormLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

// slogWriter 把 gorm 日志转到默认 slog logger
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...any) {
	slog.Info(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "gorm")
}

// newGormLogger 未知级别按 warn 处理；记录不存在不算错误
func newGormLogger(level string, slow time.Duration) logger.Interface {
	lvl, ok := gormLevels[strings.ToLower(level)]
	if !ok {
		lvl = logger.Warn
	}
	return logger.New(slogWriter{}, logger.Config{
		SlowThreshold:             slow,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
