package xid

import "os"

type options struct {
	machineID      func() (uint16, error)
	checkMachineID func(uint16) bool
}

// Option 生成器选项
type Option func(*options)

// WithMachineID 设置机器 ID 来源，默认 [DefaultMachineID]。
func WithMachineID(fn func() (uint16, error)) Option {
	return func(o *options) {
		o.machineID = fn
	}
}

// WithCheckMachineID 设置机器 ID 校验函数，返回 false 时 NewGenerator 失败。
func WithCheckMachineID(fn func(uint16) bool) Option {
	return func(o *options) {
		o.checkMachineID = fn
	}
}

// DefaultMachineID 当前进程号的低 16 位
func DefaultMachineID() (uint16, error) {
	return uint16(os.Getpid() & machineMask), nil //#nosec G115 -- 已按掩码截断
}
