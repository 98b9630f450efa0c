package database

import (
	"fmt"
	"log/slog"
	"time"

	"terminal-terrace/ai-magazine/config"
	"terminal-terrace/ai-magazine/internal/model"
	"terminal-terrace/ai-magazine/packages/database"

	"gorm.io/gorm"
)

const serviceName = "ai-magazine"

var (
	PostgresDB *gorm.DB
	// RedisDB 可能为 nil，调用方需降级处理
	RedisDB *database.RedisClient
)

// InitDatabase 初始化 Postgres（必需）与 Redis（可选）
func InitDatabase() error {
	if err := initPostgres(); err != nil {
		return err
	}
	initRedis()
	return nil
}

func initPostgres() error {
	databaseConf := config.Conf.Database

	var err error
	PostgresDB, err = database.InitPostgres(
		&database.PostgresConfig{
			ServiceName:     serviceName,
			Username:        databaseConf.Username,
			Password:        databaseConf.Password,
			Host:            databaseConf.Host,
			Port:            databaseConf.Port,
			Database:        databaseConf.Database,
			SSLMode:         databaseConf.SSLMode,
			TimeZone:        databaseConf.TimeZone,
			LogLevel:        databaseConf.LogLevel,
			MaxIdleConns:    databaseConf.MaxIdleConns,
			MaxOpenConns:    databaseConf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
		},
	)
	if err != nil {
		return err
	}

	// 初始化数据库表
	if err := model.InitTable(PostgresDB); err != nil {
		return fmt.Errorf("迁移数据表失败: %w", err)
	}
	return nil
}

func initRedis() {
	redisConf := config.Conf.Redis
	if !redisConf.Enabled {
		slog.Info("Redis 未启用，设置缓存将直接读库")
		return
	}

	client, err := database.InitRedis(&database.RedisConfig{
		ServiceName: serviceName,
		Host:        redisConf.Host,
		Port:        redisConf.Port,
		Password:    redisConf.Password,
		DB:          redisConf.DB,
		PoolSize:    redisConf.PoolSize,
	})
	if err != nil {
		slog.Warn("Redis 不可用，设置缓存将直接读库", "error", err)
		return
	}
	RedisDB = client
}

// Close 关闭连接
func Close() {
	if PostgresDB != nil {
		if sqlDB, err := PostgresDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if RedisDB != nil {
		_ = RedisDB.Close()
	}
}
