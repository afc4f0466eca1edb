package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

// hasDotDotSegment 检测路径中是否有恰好为 ".." 的段，'/' 与 '\' 都视为分隔符。
func hasDotDotSegment(path string) bool {
	for i := 0; i < len(path); {
		if isSeparator(path[i]) {
			i++
			continue
		}
		j := i
		for j < len(path) && !isSeparator(path[j]) {
			j++
		}
		if path[i:j] == ".." {
			return true
		}
		i = j
	}
	return false
}

// CleanPath 校验路径格式并规范化，不限制路径位置。
//
// 拒绝空路径、含空字节的路径和以分隔符结尾的目录路径。
// 相对路径中的 ".." 保留，由操作系统按当前目录解析。
func CleanPath(filename string) (string, error) {
	if filename == "" {
		return "", ErrEmptyPath
	}
	if strings.ContainsRune(filename, 0) {
		return "", ErrNullByte
	}
	if isSeparator(filename[len(filename)-1]) {
		return "", fmt.Errorf("%w: %q is a directory", ErrInvalidPath, filename)
	}

	cleaned := filepath.Clean(filename)
	if base := filepath.Base(cleaned); base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("%w: no file name in %q", ErrInvalidPath, filename)
	}
	return cleaned, nil
}

// SanitizePath 在 [CleanPath] 的基础上拒绝规范化后仍包含 ".." 段的相对路径。
// 绝对路径中的 ".." 由 Clean 正常解析。
func SanitizePath(filename string) (string, error) {
	cleaned, err := CleanPath(filename)
	if err != nil {
		return "", err
	}
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("%w: %q", ErrPathTraversal, filename)
	}
	return cleaned, nil
}

// SafeJoin 将相对路径 name 拼接到 base 下，结果保证位于 base 之内。
// 不解析符号链接。
//
//	SafeJoin("/var/log/vkperf", "run1.csv")   // "/var/log/vkperf/run1.csv"
//	SafeJoin("/var/log/vkperf", "../x.csv")   // ErrPathTraversal
//	SafeJoin("/var/log/vkperf", "/etc/passwd") // ErrPathEscaped
func SafeJoin(base, name string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("%w: base", ErrEmptyPath)
	}
	if filepath.IsAbs(name) || (name != "" && isSeparator(name[0])) {
		return "", fmt.Errorf("%w: %q is absolute", ErrPathEscaped, name)
	}
	clean, err := SanitizePath(name)
	if err != nil {
		return "", err
	}

	cleanBase := filepath.Clean(base)
	joined := filepath.Join(cleanBase, clean)
	rel, err := filepath.Rel(cleanBase, joined)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrPathEscaped, name)
	}
	return joined, nil
}
