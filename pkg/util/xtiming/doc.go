// Package xtiming 提供单调时钟读数和事件间隔追踪。
//
// [Tracker.Delta] 返回距上一次调用经过的时间，第一次调用返回 ok=false
// （没有先前的观测）。每个 Tracker 持有自己的锁，与其他共享状态互不阻塞。
//
// 时间源通过 [Clock] 注入，测试中可以替换为可控时钟。
package xtiming
