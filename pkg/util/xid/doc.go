// Package xid 基于 Sonyflake 生成 64 位唯一 ID。
//
// 用于模拟驱动为实例、设备、着色器模块等对象分配非零、进程间不冲突的句柄值。
//
// ID 布局（Sonyflake v2 默认）：
//
//	39 bits - 时间（10ms 为单位）
//	 8 bits - 序列号
//	16 bits - 机器 ID
//
// 默认机器 ID 取当前进程号的低 16 位，同一主机上协作的多个进程不会分到相同的 ID。
//
//	g, err := xid.NewGenerator()
//	if err != nil {
//	    return err
//	}
//	id, err := g.New()
package xid
