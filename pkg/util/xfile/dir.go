package xfile

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDirPerm 默认目录权限
const DefaultDirPerm = 0o750

// EnsureDir 确保 filename 的父目录存在（权限 [DefaultDirPerm]），已存在时不报错。
// 跟随符号链接。
func EnsureDir(filename string) error {
	if filename == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(filename, 0) {
		return ErrNullByte
	}
	dir := filepath.Dir(filename)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, DefaultDirPerm)
}
