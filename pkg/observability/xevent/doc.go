// Package xevent 写入性能日志：主日志与可选的共享事件日志。
//
// # 主日志
//
// 启动时以截断方式打开，第一行是外部提供的表头，之后是各探针的原样内容。
// 未配置路径或打开失败时写到标准错误，打开失败会通过 xlog 给出警告。
// 可选按大小轮转（xrotate）。
//
// # 事件日志
//
// 仅在配置了路径时启用（通常来自环境变量 [EnvEventLogFile]）。
// 以追加方式打开，多个进程中的多个拦截层可以写同一个文件。每行格式：
//
//	event_type,timestamp_ns[,field1[,field2...]]
//
// 含逗号、引号或换行的单元格用双引号包裹，内部引号加倍（见 [Quote]），
// 保证按逗号切分时单元格数固定。没有表头行。
//
// # 原子性
//
// 每行（含换行符）通过一次 Write 系统调用写出，且在该 sink 的互斥锁内完成。
// 同一进程内不会出现行内交错；开启 LockEventLog 时还会在写入期间持有
// 文件的 flock，对同样加锁的其他进程生效。不同线程的行之间不保证顺序。
//
// 两个 sink 都不做缓冲，每次写入直接落到文件描述符。
package xevent
