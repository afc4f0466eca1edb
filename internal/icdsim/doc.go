// Package icdsim 模拟图形 API 的 loader 与驱动（ICD），用于在没有真实驱动的环境中
// 驱动拦截层的完整调用链。
//
// [Driver] 是链的末端，为每个对象分配唯一句柄并跟踪存活对象；
// [Loader] 把任意数量的拦截层叠放在驱动前面，按真实 loader 的方式为每次
// 实例/设备创建构造 loader 链接记录，并把调用交给最外层。
//
//	drv, _ := icdsim.NewDriver()
//	loader := icdsim.NewLoader(drv, layer)
//	instance, res := loader.CreateInstance(&xvk.InstanceCreateInfo{}, nil)
package icdsim
