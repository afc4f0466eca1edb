// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化诊断日志，基于 log/slog 扩展
//   - xevent: 主日志与共享事件日志的 CSV 行写入
//   - xmetrics: 统一观测接口，OpenTelemetry 实现
//   - xrotate: 日志文件轮转
//
// 设计原则：
//   - 诊断日志与 CSV 事件日志分离，后者保持原始文本
//   - 写入失败只记录，不影响被观测的调用
package observability
