package xdispatch

// Option 注册表配置选项
type Option func(*options)

type options struct {
	maxObjects int
}

// WithMaxObjects 限制每张表的最大条目数，超出时 Add* 返回 false。
// n <= 0 表示不限制（默认）。
func WithMaxObjects(n int) Option {
	return func(o *options) {
		o.maxObjects = n
	}
}
