package xrun

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/vkperf/pkg/observability/xlog"
)

// Group 管理一组共享 context 的任务
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *groupOptions
}

// NewGroup 创建 Group，返回的 context 在任一任务出错、
// 调用 Cancel 或 Wait 返回时取消。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)
	return &Group{
		eg:       eg,
		ctx:      egCtx,
		causeCtx: causeCtx,
		cancel:   cancel,
		opts:     options,
	}, egCtx
}

// Go 启动一个任务
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return fn(g.ctx)
	})
}

// GoWithName 启动一个任务并记录启停日志
func (g *Group) GoWithName(name string, fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		attrs := []slog.Attr{slog.String("group", g.opts.name), slog.String("task", name)}
		g.opts.logger.Debug(g.ctx, "task starting", attrs...)

		err := fn(g.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			g.opts.logger.Warn(g.ctx, "task exited with error", append(attrs, xlog.Err(err))...)
		} else {
			g.opts.logger.Debug(g.ctx, "task stopped", attrs...)
		}
		return err
	})
}

// Wait 等待所有任务结束。
//
// 返回第一个非取消错误；Group 以 Cancel(cause) 或信号结束时返回 cause，
// cause 为 nil 时返回 nil。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()

	if errors.Is(err, context.Canceled) {
		if g.causeCtx.Err() != nil {
			return g.cause()
		}
		return err
	}
	if err == nil && g.causeCtx.Err() != nil {
		return g.cause()
	}
	return err
}

// cause 返回非 context.Canceled 的取消原因
func (g *Group) cause() error {
	if cause := context.Cause(g.causeCtx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return nil
}

// Cancel 以 cause 取消所有任务，nil 表示正常收尾。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 返回任务共享的 context
func (g *Group) Context() context.Context {
	return g.ctx
}

// Run 创建带信号处理的 Group 并运行 tasks，直到全部结束。
func Run(ctx context.Context, opts []Option, tasks ...func(ctx context.Context) error) error {
	g, _ := NewGroup(ctx, opts...)
	g.GoSignals()
	for _, task := range tasks {
		g.Go(task)
	}
	return g.Wait()
}
