package icdsim

import "github.com/omeyang/vkperf/pkg/util/xid"

// DefaultPhysicalDevices 每个实例默认的物理设备数
const DefaultPhysicalDevices = 2

// Option 驱动选项
type Option func(*options)

type options struct {
	physicalDevices int
	ids             *xid.Generator
}

// WithPhysicalDevices 设置每个实例枚举出的物理设备数
func WithPhysicalDevices(n int) Option {
	return func(o *options) {
		o.physicalDevices = n
	}
}

// WithIDGenerator 设置句柄生成器，默认按当前进程号创建。
func WithIDGenerator(g *xid.Generator) Option {
	return func(o *options) {
		o.ids = g
	}
}
