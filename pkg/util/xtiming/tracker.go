package xtiming

import (
	"sync"
	"time"
)

// Tracker 追踪相邻两次观测之间的间隔，并发安全。
type Tracker struct {
	clock Clock

	mu   sync.Mutex
	last time.Time
	seen bool
}

// NewTracker 创建 Tracker。clock 为 nil 时使用 [SystemClock]。
func NewTracker(clock Clock) *Tracker {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Tracker{clock: clock}
}

// Clock 返回 Tracker 使用的时间源
func (t *Tracker) Clock() Clock {
	return t.clock
}

// Delta 记录一次观测并返回距上一次观测经过的时间。
//
// 第一次调用返回 (0, false)。时钟回退时返回 0，保证结果非负。
func (t *Tracker) Delta() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	if !t.seen {
		t.last = now
		t.seen = true
		return 0, false
	}
	d := max(now.Sub(t.last), 0)
	t.last = now
	return d, true
}

// Reset 丢弃先前的观测，下一次 Delta 再次返回 ok=false。
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.seen = false
	t.last = time.Time{}
	t.mu.Unlock()
}
