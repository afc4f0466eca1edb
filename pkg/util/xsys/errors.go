package xsys

import "errors"

var (
	// ErrNilFile 传入的文件为 nil
	ErrNilFile = errors.New("xsys: file is nil")

	// ErrUnsupportedPlatform 当前平台不支持此操作
	ErrUnsupportedPlatform = errors.New("xsys: unsupported platform")
)
