// config/config.go - 配置管理文件
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix 环境变量前缀，MAGAZINE_SERVER_PORT -> server.port
const EnvPrefix = "MAGAZINE_"

var (
	Conf *AppConfig
	once sync.Once
	k    *koanf.Koanf
)

// Load 加载配置文件
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// 首先加载 .env 文件到环境变量
		if envErr := godotenv.Load(); envErr != nil {
			slog.Debug("未加载 .env 文件", "error", envErr)
		}

		k = koanf.New(".")
		err = load(configPath)
	})

	return err
}

func load(configPath string) error {
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return fmt.Errorf("加载配置文件失败: %w", err)
	}

	// 加载环境变量（会覆盖配置文件）
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		slog.Warn("加载环境变量失败", "error", err)
	}

	conf := &AppConfig{}
	if err := k.Unmarshal("", conf); err != nil {
		return fmt.Errorf("解析配置失败: %w", err)
	}

	loadCustomEnvVars(conf)

	// 转换时间单位
	conf.Server.ReadTimeout = conf.Server.ReadTimeout * time.Second
	conf.Server.WriteTimeout = conf.Server.WriteTimeout * time.Second

	validateConfig(conf)
	Conf = conf
	return nil
}

// loadCustomEnvVars 常用的短环境变量名（部署平台习惯写法）
func loadCustomEnvVars(c *AppConfig) {
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.Username, "DB_USERNAME")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Database, "DB_DATABASE")
	setString(&c.Redis.Host, "REDIS_HOST")
	setInt(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Server.FrontendURL, "FRONTEND_URL")
	setString(&c.Smtp.Host, "SMTP_HOST")
	setString(&c.Smtp.Username, "SMTP_USERNAME")
	setString(&c.Smtp.Password, "SMTP_PASSWORD")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// validateConfig 检查关键配置，只告警不中断
func validateConfig(c *AppConfig) {
	if c.JWT.Secret == "" {
		slog.Warn("jwt.secret 未设置，所有令牌校验都会失败")
	}
	if c.Storage.PrivateDir == "" || c.Storage.PublicLink == "" {
		slog.Warn("storage.private_dir / storage.public_link 未设置，媒体文件将无法公开访问")
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Storage.PublicURL == "" {
		c.Storage.PublicURL = "/storage"
	}
}

// MustLoad 加载配置，失败则退出
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		slog.Error("配置加载失败", "error", err)
		os.Exit(1)
	}
}

// GetString 按点分路径读取已合并的配置值（文件 + 环境变量）
func GetString(key string) string {
	if k == nil {
		panic("配置未初始化")
	}
	return k.String(key)
}
