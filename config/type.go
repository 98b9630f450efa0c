package config

import (
	"time"

	"terminal-terrace/ai-magazine/packages/email"
)

// AppConfig 应用配置结构
type AppConfig struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Log      LogConfig      `koanf:"log"`
	JWT      JWTConfig      `koanf:"jwt"`
	Smtp     email.Config   `koanf:"smtp"`
	Storage  StorageConfig  `koanf:"storage"`
	AI       AIConfig       `koanf:"ai"`
	Feed     FeedConfig     `koanf:"feed"`
}

type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Mode         string        `koanf:"mode"` // debug, release, test
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	FrontendURL  string        `koanf:"frontend_url"`
}

type DatabaseConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	SSLMode      bool   `koanf:"sslmode"`
	TimeZone     string `koanf:"timezone"`
	LogLevel     string `koanf:"log_level"` // 数据库日志级别
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // 秒
}

type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, text
}

type JWTConfig struct {
	Secret     string `koanf:"secret"`
	ExpireTime int    `koanf:"expire_time"` // 小时
}

// StorageConfig 私有存储与公开链接
type StorageConfig struct {
	PrivateDir    string `koanf:"private_dir"`    // 私有存储目录，如 storage/app/public
	PublicLink    string `koanf:"public_link"`    // 公开符号链接路径，如 public/storage
	PublicURL     string `koanf:"public_url"`     // 对外 URL 前缀，如 /storage
	CheckInterval int    `koanf:"check_interval"` // 定时检查间隔，分钟
	MaxUploadMB   int    `koanf:"max_upload_mb"`
}

type AIConfig struct {
	Timeout          int     `koanf:"timeout"`            // 秒
	SettingsCacheTTL int     `koanf:"settings_cache_ttl"` // 秒
	DefaultProvider  string  `koanf:"default_provider"`
	DefaultModel     string  `koanf:"default_model"`
	DefaultEndpoint  string  `koanf:"default_endpoint"`
	Temperature      float64 `koanf:"temperature"`
	MaxTokens        int     `koanf:"max_tokens"`
}

type FeedConfig struct {
	Title       string `koanf:"title"`
	Link        string `koanf:"link"`
	Description string `koanf:"description"`
	Author      string `koanf:"author"`
	Limit       int    `koanf:"limit"`
}

// AccessTokenTTL 访问令牌有效期
func (c JWTConfig) AccessTokenTTL() time.Duration {
	if c.ExpireTime <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.ExpireTime) * time.Hour
}

// CheckEvery 存储链接检查间隔
func (c StorageConfig) CheckEvery() time.Duration {
	if c.CheckInterval <= 0 {
		return time.Hour
	}
	return time.Duration(c.CheckInterval) * time.Minute
}

// MaxUploadBytes 单文件上传上限
func (c StorageConfig) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(c.MaxUploadMB) << 20
}

// CacheTTL AI 设置缓存时长
func (c AIConfig) CacheTTL() time.Duration {
	if c.SettingsCacheTTL <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.SettingsCacheTTL) * time.Second
}

// RequestTimeout 调用 AI 服务的 HTTP 超时
func (c AIConfig) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}
