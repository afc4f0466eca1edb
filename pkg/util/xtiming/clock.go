package xtiming

import "time"

// Clock 时间源
type Clock interface {
	// Now 返回当前时间。返回值应携带单调时钟读数，
	// 以便 Sub 计算出的间隔不受墙上时钟调整影响。
	Now() time.Time
}

// SystemClock 使用 time.Now 的时钟
type SystemClock struct{}

// Now 实现 Clock
func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc 函数适配器
type ClockFunc func() time.Time

// Now 实现 Clock
func (f ClockFunc) Now() time.Time { return f() }

// ToUnixNanos 返回 t 的 Unix 纳秒时间戳，用于事件日志前缀。
func ToUnixNanos(t time.Time) int64 {
	return t.UnixNano()
}
