package xchain

import "iter"

// MaxLength 单条链允许遍历的最大节点数。
// 超过该值的链按 "未找到" 处理，避免环形链导致死循环。
const MaxLength = 4096

// Node 扩展记录链中的一个节点。
//
// K 为节点类型判别值（如结构体类型枚举）。
type Node[K comparable] interface {
	// Kind 返回节点类型判别值
	Kind() K

	// Next 返回下一个节点，链尾返回 nil
	Next() Node[K]
}

// All 返回从 head 开始按链顺序迭代的序列。
// head 为 nil 时序列为空。
func All[K comparable](head Node[K]) iter.Seq[Node[K]] {
	return func(yield func(Node[K]) bool) {
		n := head
		for i := 0; n != nil && i < MaxLength; i++ {
			if !yield(n) {
				return
			}
			n = n.Next()
		}
	}
}

// Len 返回链上的节点数，最多统计到 MaxLength。
func Len[K comparable](head Node[K]) int {
	count := 0
	for range All(head) {
		count++
	}
	return count
}

// Find 查找第一个 Kind() == kind、可断言为 T 且 match 返回 true 的节点。
//
// match 为 nil 时只按 kind 和类型匹配。kind 相同但类型不是 T 的节点会被跳过。
// 未找到时返回 T 的零值和 false，这是正常结果，调用方必须检查。
//
// 示例：
//
//	info, ok := xchain.Find[*LinkRecord](createInfo.Next(), KindLoaderLink,
//		func(r *LinkRecord) bool { return r.Function == LinkInfo })
func Find[T Node[K], K comparable](head Node[K], kind K, match func(T) bool) (T, bool) {
	for n := range All(head) {
		if n.Kind() != kind {
			continue
		}
		t, ok := n.(T)
		if !ok {
			continue
		}
		if match == nil || match(t) {
			return t, true
		}
	}
	var zero T
	return zero, false
}
