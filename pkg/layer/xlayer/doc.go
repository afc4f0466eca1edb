// Package xlayer 实现拦截层的调用拦截协议，并把分发注册表、着色器哈希表、
// 事件日志和计时器组合为一个进程级的 [LayerData]。
//
// # 创建协议
//
// 每个对象创建跳板按固定的状态机执行：
//
//	Locate   在创建参数的扩展链上查找 loader 链接记录，未找到时返回
//	         ErrorInitializationFailed，不做任何修改
//	Extract  读取下一层的入口解析函数
//	Advance  把链接记录推进到下一层（一次性修改调用方参数）
//	Forward  调用下一层的创建入口，失败码原样返回
//	Register 用下一层的解析函数构建分发表并登记
//
// 登记失败时返回 ErrorOutOfHostMemory，下一层已创建的对象不会被回收，
// 句柄仍随结果返回，由调用方决定如何处理。
//
// 销毁跳板先删除登记再转发，转发期间不持有任何锁。
//
// # 不变量检查
//
// 创建设备时物理设备必须已通过 EnumeratePhysicalDevices 关联到已登记的实例。
// 违反时默认记录错误日志并返回 ErrorInitializationFailed；
// 使用 vkperf_debug 构建标签编译时直接 panic。
//
// # 日志
//
// [LayerData.LogLine] 与 [LayerData.LogEventOnly] 写主日志和共享事件日志，
// 事件日志路径来自环境变量 VK_PERFORMANCE_LAYERS_EVENT_LOG_FILE。
// 层自身的诊断信息通过 xlog 输出，不会混入这两个日志。
package xlayer
