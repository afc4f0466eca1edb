// Package xrun 提供基于 errgroup + context 的进程内任务编排。
//
// # 核心概念
//
// [Group] 并发运行一组任务，任一任务返回错误或收到终止信号时，
// 共享的 context 被取消，其余任务应监听 ctx.Done() 并退出。
// [Group.Wait] 返回第一个错误；以 [Group.Cancel] 或信号结束时返回取消原因。
//
//	g, ctx := xrun.NewGroup(ctx, xrun.WithName("vkperfsim"))
//	g.GoSignals()
//	g.GoWithName("workload", func(ctx context.Context) error {
//	    if err := runWorkload(ctx); err != nil {
//	        return err
//	    }
//	    g.Cancel(nil) // 负载完成，结束其余任务
//	    return nil
//	})
//	err := g.Wait()
//
// # 信号处理
//
// [Group.GoSignals] 收到第一个信号后以 [SignalError] 取消 Group 并停止监听，
// 此后的信号恢复系统默认行为（通常是直接终止进程）。
// 使用 errors.Is(err, ErrSignal) 判断是否因信号退出。
//
// # 周期任务
//
// [Ticker] 把函数包装成周期执行的任务，常用于进度输出。
package xrun
