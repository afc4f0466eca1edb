package xevent

import "errors"

var (
	// ErrClosed Writer 已关闭
	ErrClosed = errors.New("xevent: writer is closed")
)
