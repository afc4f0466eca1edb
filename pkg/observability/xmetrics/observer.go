package xmetrics

import "context"

// Status 观测结果状态
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Attr 观测属性
type Attr struct {
	Key   string
	Value any
}

// SpanOptions 跨度参数
type SpanOptions struct {
	Component string
	Operation string
	Attrs     []Attr
}

// Result 跨度结束时的结果。Status 为空时由 Err 推导。
type Result struct {
	Status Status
	Err    error
	Attrs  []Attr
}

// Span 一次观测
type Span interface {
	// End 结束观测，重复调用只记录一次。
	End(result Result)
}

// Observer 观测接口
type Observer interface {
	Start(ctx context.Context, opts SpanOptions) (context.Context, Span)
}

// NoopObserver 空实现
type NoopObserver struct{}

// Start 返回 ctx 和空跨度
func (NoopObserver) Start(ctx context.Context, _ SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, NoopSpan{}
}

// NoopSpan 空跨度
type NoopSpan struct{}

// End 不做任何事
func (NoopSpan) End(Result) {}

// Start 使用 observer 开始观测，保证返回非 nil 的 ctx 与 Span。
// observer 为 nil 或返回 nil Span 时退化为 [NoopSpan]。
func Start(ctx context.Context, observer Observer, opts SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if observer == nil {
		return ctx, NoopSpan{}
	}
	retCtx, span := observer.Start(ctx, opts)
	if retCtx == nil {
		retCtx = ctx
	}
	if span == nil {
		span = NoopSpan{}
	}
	return retCtx, span
}
