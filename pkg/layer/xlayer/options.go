package xlayer

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/omeyang/vkperf/pkg/layer/xdispatch"
	"github.com/omeyang/vkperf/pkg/layer/xshader"
	"github.com/omeyang/vkperf/pkg/observability/xlog"
	"github.com/omeyang/vkperf/pkg/observability/xmetrics"
	"github.com/omeyang/vkperf/pkg/util/xtiming"
)

// Option LayerData 选项
type Option func(*options)

type options struct {
	id            uuid.UUID
	logger        xlog.Logger
	observer      xmetrics.Observer
	clock         xtiming.Clock
	stderr        io.Writer
	registryOpts  []xdispatch.Option
	shaderOpts    []xshader.Option
	buildInstance xdispatch.BuildInstanceTableFunc
	buildDevice   xdispatch.BuildDeviceTableFunc
	onShader      func(context.Context, ShaderModuleResult)
	onPipelines   func(context.Context, PipelineResult)
}

func defaultOptions() *options {
	return &options{
		id:            uuid.New(),
		observer:      xmetrics.NoopObserver{},
		clock:         xtiming.SystemClock{},
		buildInstance: xdispatch.NewInstanceTable,
		buildDevice:   xdispatch.NewDeviceTable,
	}
}

// WithID 指定层标识，默认随机生成。
// 同一标识的层不会重复推进同一条 loader 链接记录。
func WithID(id uuid.UUID) Option {
	return func(o *options) {
		if id != uuid.Nil {
			o.id = id
		}
	}
}

// WithLogger 设置诊断 logger。未设置时按 Settings.DiagLevel 构建，
// DiagLevel 也为空则使用 [xlog.Default]。
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver 设置跳板的观测器，默认不观测。
func WithObserver(obs xmetrics.Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithClock 设置计时与事件时间戳使用的时钟
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
		o.stderr = w
	}
}

// WithRegistryOptions 透传给分发注册表
func WithRegistryOptions(opts ...xdispatch.Option) Option {
	return func(o *options) {
		o.registryOpts = append(o.registryOpts, opts...)
	}
}

// WithShaderOptions 透传给着色器哈希表
func WithShaderOptions(opts ...xshader.Option) Option {
	return func(o *options) {
		o.shaderOpts = append(o.shaderOpts, opts...)
	}
}

// WithInstanceTableBuilder 替换实例分发表的构建方式，默认 [xdispatch.NewInstanceTable]。
func WithInstanceTableBuilder(fn xdispatch.BuildInstanceTableFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.buildInstance = fn
		}
	}
}

// WithDeviceTableBuilder 替换设备分发表的构建方式，默认 [xdispatch.NewDeviceTable]。
func WithDeviceTableBuilder(fn xdispatch.BuildDeviceTableFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.buildDevice = fn
		}
	}
}

// WithShaderModuleHook 每次 CreateShaderModule 跳板返回前调用，失败的创建也会回调。
func WithShaderModuleHook(fn func(context.Context, ShaderModuleResult)) Option {
	return func(o *options) {
		o.onShader = fn
	}
}

// WithPipelineHook 每次 CreateGraphicsPipelines 跳板返回前调用
func WithPipelineHook(fn func(context.Context, PipelineResult)) Option {
	return func(o *options) {
		o.onPipelines = fn
	}
}
