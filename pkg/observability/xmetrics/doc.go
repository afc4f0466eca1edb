// Package xmetrics 为被拦截调用提供统一的观测接口（metrics + tracing）。
//
// 拦截层只依赖 [Observer]/[Span]；默认实现基于 OpenTelemetry，
// 未配置时使用 [NoopObserver]，开销仅为一次接口调用。
//
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "vkperf.layer",
//		Operation: "vkCreateDevice",
//	})
//	defer span.End(xmetrics.Result{Err: res.Err()})
//
// # 指标
//
//   - vkperf.call.total（counter）
//   - vkperf.call.duration（histogram，秒）
//
// 属性：component / operation / status。
package xmetrics
