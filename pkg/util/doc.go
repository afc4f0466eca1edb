// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 路径校验、安全拼接和目录创建
//   - xid: 基于 sonyflake 的唯一 ID 生成
//   - xsys: 跨进程的文件建议锁
//   - xtiming: 可替换时钟和时间差跟踪
//
// 设计原则：
//   - 安全处理路径遍历
//   - 跨平台兼容，不支持的平台退化为空操作
package util
