package xevent

import (
	"io"

	"github.com/omeyang/vkperf/pkg/observability/xlog"
	"github.com/omeyang/vkperf/pkg/observability/xrotate"
	"github.com/omeyang/vkperf/pkg/util/xtiming"
)

// Config 输出配置
type Config struct {
	// PrimaryPath 主日志路径，空表示标准错误
	PrimaryPath string

	// Header 主日志第一行
	Header string

	// EventPath 事件日志路径，空表示不启用
	EventPath string

	// LockEventLog 写事件日志时持有文件 flock
	LockEventLog bool

	// Rotation 非 nil 时主日志按大小轮转，已有文件会被续写而不是截断
	Rotation *xrotate.Config
}

// Option Writer 选项
type Option func(*options)

type options struct {
	logger xlog.Logger
	clock  xtiming.Clock
	stderr io.Writer
}

// WithLogger 设置诊断 logger，默认 [xlog.Default]。
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock 设置事件时间戳的时钟
func WithClock(c xtiming.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithStderr 替换主日志的回退输出
func WithStderr(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.stderr = w
		}
	}
}
