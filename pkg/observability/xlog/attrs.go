package xlog

import (
	"fmt"
	"log/slog"
	"time"
)

// 标准属性 key
const (
	KeyError     = "error"
	KeyDuration  = "duration"
	KeyCount     = "count"
	KeyPath      = "path"
	KeyComponent = "component"
	KeyOperation = "operation"
	KeyHandle    = "handle"
	KeyResult    = "result"
)

// Err 错误属性，err 为 nil 时返回空属性（被 slog 忽略）。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 耗时属性，人类可读格式（如 "1.5ms"）
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 组件名属性
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 操作名属性，通常是被拦截的入口名
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Count 计数属性
func Count(n int64) slog.Attr {
	return slog.Int64(KeyCount, n)
}

// Path 文件路径属性
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Handle 对象句柄属性，使用句柄自身的字符串形式（如 "Device(0x2a)"）。
func Handle(h fmt.Stringer) slog.Attr {
	if h == nil {
		return slog.String(KeyHandle, "<nil>")
	}
	return slog.String(KeyHandle, h.String())
}

// Result 调用结果属性（如 "ERROR_OUT_OF_HOST_MEMORY"）
func Result(r fmt.Stringer) slog.Attr {
	return slog.String(KeyResult, r.String())
}
