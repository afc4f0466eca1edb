package xrotate

import "io"

var _ io.WriteCloser = (Rotator)(nil)

// Rotator 日志轮转器，所有实现并发安全。
//
// Close 之后 Write 与 Rotate 返回 [ErrClosed]，重复 Close 也返回 [ErrClosed]。
type Rotator interface {
	Write(p []byte) (n int, err error)
	Close() error

	// Rotate 立即轮转：当前文件改名为备份，之后的写入进入新文件。
	Rotate() error

	// Filename 返回当前写入的文件路径
	Filename() string
}
