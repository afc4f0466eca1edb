// Package xshader 记录着色器模块到其内容哈希的映射，并提供日志用的哈希格式化。
//
// 哈希在模块创建成功时由字节码计算一次（默认 xxhash64），之后只读；
// 模块销毁时条目被删除，之后不再可查。
//
// 哈希仅用于在日志行中关联对象与其内容，不具备密码学意义。
//
// # 格式
//
//   - 单个哈希：[ShaderHashToString]，固定宽度十六进制，如 0x00000000deadbeef
//   - 哈希序列：[PipelineHashToString]，如 [0x...,0x...]
//
// 序列格式内含逗号，写入 CSV 行时必须作为一个带引号的单元格。
package xshader
