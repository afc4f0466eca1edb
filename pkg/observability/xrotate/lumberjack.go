package xrotate

import (
	"fmt"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/vkperf/pkg/util/xfile"
)

// 默认值
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 14
	DefaultCompress   = false
)

const (
	maxSizeMB  = 10240
	maxBackups = 1024
	maxAgeDays = 3650
)

// Config 轮转策略
type Config struct {
	// MaxSizeMB 单个文件上限（MB），超过后轮转
	MaxSizeMB int `koanf:"max_size_mb"`

	// MaxBackups 保留的备份数，0 表示只按天数清理
	MaxBackups int `koanf:"max_backups"`

	// MaxAgeDays 备份保留天数，0 表示只按数量清理
	MaxAgeDays int `koanf:"max_age_days"`

	// Compress 是否 gzip 压缩备份
	Compress bool `koanf:"compress"`

	// LocalTime 备份文件名使用本地时间（默认 UTC）
	LocalTime bool `koanf:"local_time"`
}

// DefaultConfig 返回默认轮转策略
func DefaultConfig() Config {
	return Config{
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAgeDays: DefaultMaxAgeDays,
		Compress:   DefaultCompress,
	}
}

// Validate 校验取值范围
func (c Config) Validate() error {
	if c.MaxSizeMB <= 0 || c.MaxSizeMB > maxSizeMB {
		return fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidMaxSize, c.MaxSizeMB, maxSizeMB)
	}
	if c.MaxBackups < 0 || c.MaxBackups > maxBackups {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxBackups, c.MaxBackups, maxBackups)
	}
	if c.MaxAgeDays < 0 || c.MaxAgeDays > maxAgeDays {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxAge, c.MaxAgeDays, maxAgeDays)
	}
	if c.MaxBackups == 0 && c.MaxAgeDays == 0 {
		return ErrNoCleanupPolicy
	}
	return nil
}

// Option 配置选项
type Option func(*Config)

// WithMaxSize 设置单个文件上限（MB）
func WithMaxSize(mb int) Option {
	return func(c *Config) { c.MaxSizeMB = mb }
}

// WithMaxBackups 设置保留的备份数
func WithMaxBackups(n int) Option {
	return func(c *Config) { c.MaxBackups = n }
}

// WithMaxAge 设置备份保留天数
func WithMaxAge(days int) Option {
	return func(c *Config) { c.MaxAgeDays = days }
}

// WithCompress 设置是否压缩备份
func WithCompress(compress bool) Option {
	return func(c *Config) { c.Compress = compress }
}

// WithConfig 整体替换配置，通常来自配置文件
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

type lumberjackRotator struct {
	logger *lumberjack.Logger
	closed atomic.Bool
}

// NewLumberjack 创建基于 lumberjack 的轮转器。
// 路径经 [xfile.CleanPath] 校验，父目录不存在时自动创建。
// 文件在第一次写入时才创建。
func NewLumberjack(filename string, opts ...Option) (Rotator, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path, err := xfile.CleanPath(filename)
	if err != nil {
		return nil, err
	}
	if err := xfile.EnsureDir(path); err != nil {
		return nil, err
	}

	return &lumberjackRotator{
		logger: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		},
	}, nil
}

func (r *lumberjackRotator) Write(p []byte) (int, error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}
	n, err := r.logger.Write(p)
	if err != nil && r.closed.Load() {
		// Close 在写入期间完成
		return n, ErrClosed
	}
	return n, err
}

func (r *lumberjackRotator) Close() error {
	if r.closed.Swap(true) {
		return ErrClosed
	}
	return r.logger.Close()
}

func (r *lumberjackRotator) Rotate() error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.logger.Rotate()
}

func (r *lumberjackRotator) Filename() string {
	return r.logger.Filename
}
