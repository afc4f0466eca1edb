// Package xlog 基于 log/slog 的诊断日志。
//
// 记录拦截层自身的诊断信息（日志文件打开失败、注册失败、前置条件违反等），
// 与性能日志、事件日志的行格式无关。
//
// # 创建 Logger
//
// Builder 模式，遇到第一个配置错误后后续 Set 被跳过，错误由 [Builder.Build] 返回：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetRotation("/var/log/vkperf/diag.log", xrotate.WithMaxSize(10)).
//		Build()
//	defer cleanup()
//
// # 全局 Logger
//
// [Default] 惰性创建一个输出到 stderr 的 Info 级别 text logger。
// 库内部在未注入 Logger 时使用它。[SetDefault] 替换，[ResetDefault] 仅供测试。
//
// # 便捷属性
//
// [Err]、[Duration]、[Component]、[Operation]、[Count]、[Path]、[Handle]、[Result]。
package xlog
