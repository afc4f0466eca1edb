// Package xvk 定义拦截层与下一层之间交换的 API 表面：
// 对象句柄、结果码、创建参数结构体、loader 链接记录以及入口函数类型。
//
// 这些类型只描述调用约定，不包含任何驱动实现。句柄是不透明的 uint64，
// 由下一层分配；结果码沿用图形 API 的数值，非负为成功，负数为失败。
//
// # 扩展链
//
// 所有创建参数结构体和扩展记录都实现 [Node]，可交给 xchain 遍历。
// loader 注入的链接记录（[LayerInstanceCreateInfo]、[LayerDeviceCreateInfo]）
// 通过 [FindInstanceLink]、[FindDeviceLink] 定位，并用各自的 Advance 方法
// 把内嵌的层链接推进到下一层。
package xvk
