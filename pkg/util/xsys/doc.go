// Package xsys 提供跨进程的文件级互斥。
//
//   - [LockFile]: 对打开的文件加排他 advisory 锁（flock LOCK_EX），阻塞直到获得
//   - [UnlockFile]: 释放
//
// 在非 Unix 平台上两者返回 [ErrUnsupportedPlatform]，调用方应退化为进程内互斥。
// advisory 锁只约束同样加锁的写者。
package xsys
