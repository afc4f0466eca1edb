// Package xchain 遍历由 "kind + next" 串起来的异构扩展记录链。
//
// 图形 API 在创建对象时允许调用方通过 next 指针挂接任意类型的扩展结构体，
// loader 借助这条链向每一层注入 "下一层" 的入口信息。本包把链抽象为
// [Node] 接口，只提供只读的遍历与查找：
//
//   - [All]: 按链顺序迭代所有节点
//   - [Find]: 查找第一个 kind 匹配且满足附加条件的节点
//   - [Len]: 统计链长度
//
// 本包从不修改链。推进 loader 链接记录等写操作由持有具体类型的调用方完成。
//
// # 约定
//
// Next 在链尾必须返回无类型 nil。链长度超过 [MaxLength] 视为损坏（通常是环），
// 遍历在该处停止。
package xchain
