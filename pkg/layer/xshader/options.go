package xshader

// Option 哈希表配置选项
type Option func(*options)

type options struct {
	shardCount uint
	hasher     Hasher
}

const defaultShardCount = 16

func defaultOptions() options {
	return options{
		shardCount: defaultShardCount,
		hasher:     DefaultHasher,
	}
}

// WithShardCount 设置分片数量，必须是 2 的幂。
func WithShardCount(n uint) Option {
	return func(o *options) {
		o.shardCount = n
	}
}

// WithHasher 替换内容哈希函数，nil 被忽略。
func WithHasher(h Hasher) Option {
	return func(o *options) {
		if h != nil {
			o.hasher = h
		}
	}
}

func (o *options) validate() error {
	if o.shardCount == 0 || o.shardCount&(o.shardCount-1) != 0 {
		return ErrInvalidShardCount
	}
	return nil
}
