package database

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestBuildDSN(t *testing.T) {
	cfg := &PostgresConfig{ServiceName: "ai-magazine", Username: "u", Password: "p", Database: "magazine"}
	setDefaults(cfg)

	assert.Equal(t,
		"host=localhost user=u password=p dbname=magazine port=5432 sslmode=disable TimeZone=UTC application_name=ai-magazine",
		BuildDSN(cfg))

	cfg.SSLMode = true
	assert.Contains(t, BuildDSN(cfg), "sslmode=require")
}

func TestNewGormLoggerLevels(t *testing.T) {
	tests := []struct {
		level string
		want  logger.LogLevel
	}{
		{"silent", logger.Silent},
		{"ERROR", logger.Error},
		{"info", logger.Info},
		{"bogus", logger.Warn},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := newGormLogger(tt.level, time.Second)
			// LogMode 返回副本，比较时用同一级别再设置一次
			assert.Equal(t, l, l.LogMode(tt.want))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}

	assert.True(t, IsUniqueViolation(pgErr))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", pgErr)))
	assert.True(t, IsUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email"`)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsDataError(t *testing.T) {
	assert.True(t, IsDataError(&pgconn.PgError{Code: "22001"}), "字符串超长")
	assert.True(t, IsDataError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23502"})))
	assert.False(t, IsDataError(&pgconn.PgError{Code: "40001"}))
	assert.False(t, IsDataError(errors.New("connection reset")))
	assert.False(t, IsDataError(nil))
}

func TestRedisOptions(t *testing.T) {
	cfg := &RedisConfig{ServiceName: "ai-magazine", Host: "cache.internal", DB: 2}
	setRedisDefaults(cfg)
	opts := redisOptions(cfg)

	assert.Equal(t, "cache.internal:6379", opts.Addr)
	assert.Equal(t, "ai-magazine", opts.ClientName)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 10, opts.PoolSize)
	assert.Equal(t, time.Second, opts.ReadTimeout)
}
