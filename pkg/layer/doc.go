// Package layer 提供插入 loader 调用链的拦截层相关子包。
//
// 子包列表：
//   - xvk: 句柄、结果码、创建参数结构与入口函数签名
//   - xchain: 扩展结构链遍历
//   - xdispatch: 实例/设备分发表登记
//   - xshader: 着色器内容哈希登记
//   - xlayer: 拦截协议与层状态
package layer
