// Package xdispatch 维护存活对象到下一层分发表的并发安全映射。
//
// # 角色
//
//   - 实例表：[Key] -> [*InstanceTable]
//   - 设备表：[Key] -> [*DeviceTable]
//   - 关联表：子对象 [Key] -> 所属实例（如物理设备 -> 实例）
//
// 同一个句柄值可能同时出现在多张表中（不同对象类型的句柄值可以重叠），
// 注册表通过表区分 key 的角色，而不是通过类型。
//
// # 不变量
//
// 某对象的条目存在，当且仅当该对象存活（创建成功且尚未销毁）。
// 注册表是 "对象是否存活" 的唯一事实来源。
//
// # 并发
//
// 实例相关映射和设备映射各持有一把读写锁。写操作（Add/Remove）持写锁，
// 查找持读锁且只在锁内取出表指针；分发表在构建后不可变，调用方在锁外使用。
// 本包从不在持锁期间调用下一层。
package xdispatch
