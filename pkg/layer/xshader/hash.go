package xshader

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Hasher 计算字节内容的 64 位哈希
type Hasher func(code []byte) uint64

// DefaultHasher 默认哈希函数（xxhash64）
var DefaultHasher Hasher = xxhash.Sum64

// HashVector 一条管线中各着色器阶段的哈希，按阶段顺序排列。
type HashVector []uint64

// String 实现 fmt.Stringer，等价于 [PipelineHashToString]。
func (v HashVector) String() string {
	return PipelineHashToString(v)
}

// ShaderHashToString 将单个哈希格式化为固定宽度十六进制。
func ShaderHashToString(hash uint64) string {
	return fmt.Sprintf("0x%016x", hash)
}

// PipelineHashToString 将哈希序列格式化为 "[h1,h2,...]"，空序列为 "[]"。
func PipelineHashToString(hashes HashVector) string {
	var b strings.Builder
	b.Grow(2 + len(hashes)*19)
	b.WriteByte('[')
	for i, h := range hashes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(ShaderHashToString(h))
	}
	b.WriteByte(']')
	return b.String()
}
