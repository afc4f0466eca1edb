package xrun

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// DefaultSignals 默认监听的信号：SIGHUP、SIGINT、SIGTERM。
// 每次调用返回新切片。
func DefaultSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
	}
}

// testSigChanKey 测试中经 context 注入信号通道，避免向进程发送真实信号。
type testSigChanKey struct{}

func testSigChan(ctx context.Context) <-chan os.Signal {
	c, ok := ctx.Value(testSigChanKey{}).(<-chan os.Signal)
	if !ok {
		return nil
	}
	return c
}

func withTestSigChan(ctx context.Context, c <-chan os.Signal) context.Context {
	return context.WithValue(ctx, testSigChanKey{}, c)
}

// GoSignals 启动信号监听任务。收到信号后以 [SignalError] 取消 Group 并停止监听。
func (g *Group) GoSignals() {
	signals := g.opts.signals
	if len(signals) == 0 {
		signals = DefaultSignals()
	}

	g.Go(func(ctx context.Context) error {
		testc := testSigChan(ctx)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, signals...)
		defer signal.Stop(sigCh)

		var sig os.Signal
		select {
		case sig = <-testc:
		case sig = <-sigCh:
		case <-ctx.Done():
			return ctx.Err()
		}

		g.opts.logger.Info(ctx, "received signal",
			slog.String("group", g.opts.name),
			slog.String("signal", sig.String()),
		)
		g.cancel(&SignalError{Signal: sig})
		return nil
	})
}
