package xfile

import "errors"

var (
	// ErrEmptyPath 路径为空
	ErrEmptyPath = errors.New("xfile: path is required")

	// ErrInvalidPath 路径格式无效（如目录路径）
	ErrInvalidPath = errors.New("xfile: invalid path")

	// ErrPathTraversal 路径包含 ".." 段
	ErrPathTraversal = errors.New("xfile: path traversal detected")

	// ErrPathEscaped 拼接结果不在基准目录内
	ErrPathEscaped = errors.New("xfile: path escapes base directory")

	// ErrNullByte 路径包含空字节，内核会在此处截断
	ErrNullByte = errors.New("xfile: path contains null byte")
)
