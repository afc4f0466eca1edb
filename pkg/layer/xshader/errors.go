package xshader

import "errors"

var (
	// ErrInvalidShardCount 分片数量不是 2 的幂
	ErrInvalidShardCount = errors.New("xshader: shard count must be a power of 2")
)
