package xshader

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/omeyang/vkperf/pkg/layer/xvk"
)

// Table 着色器模块到内容哈希的并发安全映射，按模块句柄分片。
type Table struct {
	shards []shard
	mask   uint64
	hasher Hasher
}

type shard struct {
	mu     sync.RWMutex
	hashes map[xvk.ShaderModule]uint64
}

// New 创建哈希表
func New(opts ...Option) (*Table, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	shards := make([]shard, o.shardCount)
	for i := range shards {
		shards[i].hashes = make(map[xvk.ShaderModule]uint64)
	}
	return &Table{
		shards: shards,
		mask:   uint64(o.shardCount - 1),
		hasher: o.hasher,
	}, nil
}

func (t *Table) shard(module xvk.ShaderModule) *shard {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(module))
	return &t.shards[xxhash.Sum64(buf[:])&t.mask]
}

// Hash 计算字节码的哈希，不修改表。
func (t *Table) Hash(code []byte) uint64 {
	return t.hasher(code)
}

// Register 计算 code 的哈希并记录到 module 下，返回该哈希。
// 已存在的条目会被覆盖：句柄被下一层复用意味着旧模块已销毁。
func (t *Table) Register(module xvk.ShaderModule, code []byte) uint64 {
	h := t.hasher(code)
	t.Put(module, h)
	return h
}

// Put 直接记录已计算好的哈希
func (t *Table) Put(module xvk.ShaderModule, hash uint64) {
	s := t.shard(module)
	s.mu.Lock()
	s.hashes[module] = hash
	s.mu.Unlock()
}

// Lookup 查询模块的哈希
func (t *Table) Lookup(module xvk.ShaderModule) (uint64, bool) {
	s := t.shard(module)
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hashes[module]
	return h, ok
}

// Erase 删除模块的条目，返回条目是否存在。
func (t *Table) Erase(module xvk.ShaderModule) bool {
	s := t.shard(module)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hashes[module]; !ok {
		return false
	}
	delete(s.hashes, module)
	return true
}

// Vector 按顺序查询多个模块的哈希。
// 任一模块不存在时返回 false，以及已找到的前缀。
func (t *Table) Vector(modules ...xvk.ShaderModule) (HashVector, bool) {
	v := make(HashVector, 0, len(modules))
	for _, m := range modules {
		h, ok := t.Lookup(m)
		if !ok {
			return v, false
		}
		v = append(v, h)
	}
	return v, true
}

// Len 返回条目总数
func (t *Table) Len() int {
	n := 0
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.RLock()
		n += len(s.hashes)
		s.mu.RUnlock()
	}
	return n
}
