package xrun

import (
	"os"

	"github.com/omeyang/vkperf/pkg/observability/xlog"
)

// Option 配置 Group 的选项函数
type Option func(*groupOptions)

type groupOptions struct {
	logger  xlog.Logger
	name    string
	signals []os.Signal
}

func defaultOptions() *groupOptions {
	return &groupOptions{
		logger: xlog.Default(),
		name:   "xrun",
	}
}

// WithLogger 设置记录任务启停的日志器，默认 [xlog.Default]。
func WithLogger(logger xlog.Logger) Option {
	return func(o *groupOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 Group 名称，用于日志。默认 "xrun"。
func WithName(name string) Option {
	return func(o *groupOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// WithSignals 设置 [Group.GoSignals] 监听的信号，空列表表示 [DefaultSignals]。
func WithSignals(signals []os.Signal) Option {
	copied := append([]os.Signal(nil), signals...)
	return func(o *groupOptions) {
		o.signals = copied
	}
}
