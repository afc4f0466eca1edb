package xlayer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omeyang/vkperf/pkg/layer/xdispatch"
	"github.com/omeyang/vkperf/pkg/layer/xshader"
	"github.com/omeyang/vkperf/pkg/layer/xvk"
	"github.com/omeyang/vkperf/pkg/observability/xevent"
	"github.com/omeyang/vkperf/pkg/observability/xlog"
	"github.com/omeyang/vkperf/pkg/observability/xmetrics"
	"github.com/omeyang/vkperf/pkg/util/xtiming"
)

// component 诊断日志与观测使用的组件名
const component = "vkperf.layer"

// LayerData 一个拦截层的进程级状态。
//
// 注册表、着色器哈希表、计时器和日志 sink 各自持有独立的锁，
// 任何跳板转发给下一层时都不持有锁。
type LayerData struct {
	id       uuid.UUID
	registry *xdispatch.Registry
	shaders  *xshader.Table
	events   *xevent.Writer
	timing   *xtiming.Tracker
	clock    xtiming.Clock
	observer xmetrics.Observer
	logger   xlog.Logger

	buildInstance xdispatch.BuildInstanceTableFunc
	buildDevice   xdispatch.BuildDeviceTableFunc
	onShader      func(context.Context, ShaderModuleResult)
	onPipelines   func(context.Context, PipelineResult)

	closeOnce     sync.Once
	closeErr      error
	loggerCleanup func() error
}

// New 创建层状态并打开日志。日志打开失败不会返回错误（见 [xevent.New]），
// 只有配置无效时返回错误。
func New(settings Settings, opts ...Option) (*LayerData, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	logger, cleanup, err := diagLogger(settings, o.logger)
	if err != nil {
		return nil, err
	}

	shaders, err := xshader.New(o.shaderOpts...)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %w", ErrInvalidSettings, err), cleanup())
	}

	logger = logger.With(xlog.Component(component))
	eventOpts := []xevent.Option{xevent.WithLogger(logger), xevent.WithClock(o.clock)}
	if o.stderr != nil {
		eventOpts = append(eventOpts, xevent.WithStderr(o.stderr))
	}

	return &LayerData{
		id:            o.id,
		registry:      xdispatch.New(o.registryOpts...),
		shaders:       shaders,
		events:        xevent.New(settings.EventConfig(), eventOpts...),
		timing:        xtiming.NewTracker(o.clock),
		clock:         o.clock,
		observer:      o.observer,
		logger:        logger,
		buildInstance: o.buildInstance,
		buildDevice:   o.buildDevice,
		onShader:      o.onShader,
		onPipelines:   o.onPipelines,
		loggerCleanup: cleanup,
	}, nil
}

func diagLogger(settings Settings, given xlog.Logger) (xlog.Logger, func() error, error) {
	noop := func() error { return nil }
	if given != nil {
		return given, noop, nil
	}
	if settings.DiagLevel == "" {
		return xlog.Default(), noop, nil
	}
	logger, cleanup, err := xlog.New().SetLevelString(settings.DiagLevel).Build()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return logger, cleanup, nil
}

// ID 层标识
func (l *LayerData) ID() uuid.UUID {
	return l.id
}

// Registry 分发注册表，供其他拦截入口查询下一层的入口。
func (l *LayerData) Registry() *xdispatch.Registry {
	return l.registry
}

// Shaders 着色器哈希表
func (l *LayerData) Shaders() *xshader.Table {
	return l.shaders
}

// Events 主日志与事件日志
func (l *LayerData) Events() *xevent.Writer {
	return l.events
}

// Logger 层的诊断 logger
func (l *LayerData) Logger() xlog.Logger {
	return l.logger
}

// Now 当前时间，来自层的时钟
func (l *LayerData) Now() time.Time {
	return l.clock.Now()
}

// LogLine 写一行到主日志，事件日志启用时同时写 "event_type,ts,line"。
// ts 为零值时取当前时间。
func (l *LayerData) LogLine(eventType, line string, ts time.Time) {
	l.events.LogLine(eventType, line, ts)
}

// LogEventOnly 只写事件日志
func (l *LayerData) LogEventOnly(eventType, extra string) {
	l.events.LogEventOnly(eventType, extra)
}

// Log 写一行以管线哈希列表开头的记录："[0x..,0x..]",prefix。
// 哈希列表整体加引号，保证它只占一个 CSV 单元格。
func (l *LayerData) Log(eventType string, pipeline xshader.HashVector, prefix string) {
	l.LogLine(eventType, xevent.CsvCat(xevent.Quote(xshader.PipelineHashToString(pipeline)), prefix), time.Time{})
}

// GetTimeDelta 返回距上一次调用的时间。第一次调用返回 (0, false)。
func (l *LayerData) GetTimeDelta() (time.Duration, bool) {
	return l.timing.Delta()
}

// ShaderHash 查询着色器模块的内容哈希
func (l *LayerData) ShaderHash(module xvk.ShaderModule) (uint64, bool) {
	return l.shaders.Lookup(module)
}

// PipelineHashes 按阶段顺序返回各着色器模块的哈希。
// 任一模块未登记时返回 false 和已找到的前缀。
func (l *LayerData) PipelineHashes(modules ...xvk.ShaderModule) (xshader.HashVector, bool) {
	return l.shaders.Vector(modules...)
}

// Close 关闭日志，可重复调用。
func (l *LayerData) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = errors.Join(l.events.Close(), l.loggerCleanup())
	})
	return l.closeErr
}

// observe 开始一次跳板观测，返回的 end 记录结果码。
func (l *LayerData) observe(ctx context.Context, op string, attrs ...xmetrics.Attr) (context.Context, func(xvk.Result, ...xmetrics.Attr)) {
	ctx, span := xmetrics.Start(ctx, l.observer, xmetrics.SpanOptions{
		Component: component,
		Operation: op,
		Attrs:     attrs,
	})
	return ctx, func(res xvk.Result, extra ...xmetrics.Attr) {
		span.End(xmetrics.Result{
			Err:   res.Err(),
			Attrs: append(extra, xmetrics.String("result", res.String())),
		})
	}
}

// violated 处理调用契约违反：vkperf_debug 构建下 panic，否则记录错误并返回
// ErrorInitializationFailed。
func (l *LayerData) violated(ctx context.Context, op string, err error, attrs ...slog.Attr) xvk.Result {
	if debugInvariants {
		panic(fmt.Sprintf("xlayer: %s: %v", op, err))
	}
	l.logger.Error(ctx, "invariant violated", append(attrs, xlog.Operation(op), xlog.Err(err))...)
	return xvk.ErrorInitializationFailed
}
