package xrun

import (
	"context"
	"time"
)

// Ticker 返回每隔 interval 执行一次 fn 的任务，ctx 取消时返回 ctx.Err()。
// fn 返回错误时任务结束并返回该错误。
//
//	g.Go(xrun.Ticker(time.Second, func(ctx context.Context) error {
//	    return printProgress(ctx)
//	}))
func Ticker(interval time.Duration, fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if interval <= 0 {
			return ErrInvalidInterval
		}
		if fn == nil {
			return ErrNilFunc
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := fn(ctx); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
