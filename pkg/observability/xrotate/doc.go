// Package xrotate 提供按大小轮转的日志文件写入器。
//
// [Rotator] 是 io.WriteCloser 的超集，可直接作为 xlog 的输出目标，
// 或作为性能日志主输出。实现基于 lumberjack v2：每次 Write 在内部锁下完成，
// 单行只调用一次 Write 时行不会交错。
//
// lumberjack 以 0600 权限创建日志文件。
package xrotate
