package xmetrics

import "time"

// String 字符串属性
func String(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Bool 布尔属性
func Bool(key string, value bool) Attr {
	return Attr{Key: key, Value: value}
}

// Int64 int64 属性
func Int64(key string, value int64) Attr {
	return Attr{Key: key, Value: value}
}

// Uint64 uint64 属性，超过 int64 范围时以字符串记录。
func Uint64(key string, value uint64) Attr {
	return Attr{Key: key, Value: value}
}

// Duration 时间间隔属性，以纳秒记录。key 建议带单位，如 "compile_ns"。
func Duration(key string, value time.Duration) Attr {
	return Attr{Key: key, Value: value}
}
