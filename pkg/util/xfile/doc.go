// Package xfile 提供日志文件路径的校验与目录准备。
//
//   - [CleanPath]: 格式净化（空路径、空字节、目录路径），日志文件路径使用
//   - [SanitizePath]: CleanPath 加相对路径穿越检查
//   - [SafeJoin]: 把相对文件名限制在基准目录内
//   - [EnsureDir]: 创建文件的父目录
//
// SanitizePath 接受绝对路径，它只做格式检查，不是沙箱。
// 需要把文件限制在某个目录内时使用 SafeJoin。
package xfile
