package xid

import "errors"

var (
	// ErrInvalidConfig sonyflake 初始化失败，例如机器 ID 校验未通过
	ErrInvalidConfig = errors.New("xid: invalid config")

	// ErrOverTimeLimit 时间分量溢出，生成器无法继续生成 ID
	ErrOverTimeLimit = errors.New("xid: time component overflow")

	// ErrNilGenerator 零值或 nil Generator
	ErrNilGenerator = errors.New("xid: nil generator (use NewGenerator to create)")

	// ErrInvalidID ID 为零或负数
	ErrInvalidID = errors.New("xid: invalid id")
)
