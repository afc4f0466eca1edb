package icdsim

import "github.com/omeyang/vkperf/pkg/layer/xvk"

// Layer 可以叠放在驱动前面的拦截层
type Layer interface {
	GetInstanceProcAddr(instance xvk.Instance, name string) xvk.VoidFunction
	GetDeviceProcAddr(device xvk.Device, name string) xvk.VoidFunction
}

// Loader 按顺序叠放拦截层：layers[0] 最靠近应用，驱动在最底层。
type Loader struct {
	driver *Driver
	layers []Layer
}

// NewLoader 创建 loader，nil 层被忽略。
func NewLoader(driver *Driver, layers ...Layer) *Loader {
	l := &Loader{driver: driver}
	for _, layer := range layers {
		if layer != nil {
			l.layers = append(l.layers, layer)
		}
	}
	return l
}

// Driver 链末端的驱动
func (l *Loader) Driver() *Driver {
	return l.driver
}

func (l *Loader) gipaAt(i int) xvk.GetInstanceProcAddrFunc {
	if i < len(l.layers) {
		return l.layers[i].GetInstanceProcAddr
	}
	return l.driver.GetInstanceProcAddr
}

func (l *Loader) gdpaAt(i int) xvk.GetDeviceProcAddrFunc {
	if i < len(l.layers) {
		return l.layers[i].GetDeviceProcAddr
	}
	return l.driver.GetDeviceProcAddr
}

// InstanceChain 构造实例创建链：数据回调记录在前，链接记录在后，next 为原有扩展链。
// 链接记录的第 i 项给第 i 层，指向第 i+1 层（或驱动）的入口。
func (l *Loader) InstanceChain(next xvk.Node) xvk.Node {
	if len(l.layers) == 0 {
		return next
	}
	var head *xvk.LayerInstanceLink
	for i := len(l.layers) - 1; i >= 0; i-- {
		head = &xvk.LayerInstanceLink{
			Next:                    head,
			NextGetInstanceProcAddr: l.gipaAt(i + 1),
		}
	}
	link := &xvk.LayerInstanceCreateInfo{
		PNext:     next,
		Function:  xvk.LayerLinkInfo,
		LayerInfo: head,
	}
	return &xvk.LayerInstanceCreateInfo{
		PNext:    link,
		Function: xvk.LoaderDataCallback,
	}
}

// DeviceChain 构造设备创建链，结构同 [Loader.InstanceChain]。
func (l *Loader) DeviceChain(next xvk.Node) xvk.Node {
	if len(l.layers) == 0 {
		return next
	}
	var head *xvk.LayerDeviceLink
	for i := len(l.layers) - 1; i >= 0; i-- {
		head = &xvk.LayerDeviceLink{
			Next:                    head,
			NextGetInstanceProcAddr: l.gipaAt(i + 1),
			NextGetDeviceProcAddr:   l.gdpaAt(i + 1),
		}
	}
	link := &xvk.LayerDeviceCreateInfo{
		PNext:     next,
		Function:  xvk.LayerLinkInfo,
		LayerInfo: head,
	}
	return &xvk.LayerDeviceCreateInfo{
		PNext:    link,
		Function: xvk.LoaderDataCallback,
	}
}

// GetInstanceProcAddr 从最外层解析入口
func (l *Loader) GetInstanceProcAddr(instance xvk.Instance, name string) xvk.VoidFunction {
	return l.gipaAt(0)(instance, name)
}

// GetDeviceProcAddr 从最外层解析设备入口
func (l *Loader) GetDeviceProcAddr(device xvk.Device, name string) xvk.VoidFunction {
	return l.gdpaAt(0)(device, name)
}

// CreateInstance 为调用方参数的副本挂上链接记录后交给最外层。info 本身不会被修改。
func (l *Loader) CreateInstance(info *xvk.InstanceCreateInfo, alloc *xvk.AllocationCallbacks) (xvk.Instance, xvk.Result) {
	var chained xvk.InstanceCreateInfo
	if info != nil {
		chained = *info
	}
	chained.PNext = l.InstanceChain(chained.PNext)

	create, ok := xvk.Resolve[xvk.CreateInstanceFunc](l.GetInstanceProcAddr(0, xvk.NameCreateInstance))
	if !ok {
		return 0, xvk.ErrorInitializationFailed
	}
	return create(&chained, alloc)
}

// DestroyInstance 经最外层销毁实例
func (l *Loader) DestroyInstance(instance xvk.Instance, alloc *xvk.AllocationCallbacks) {
	if destroy, ok := xvk.Resolve[xvk.DestroyInstanceFunc](l.GetInstanceProcAddr(instance, xvk.NameDestroyInstance)); ok {
		destroy(instance, alloc)
	}
}

// EnumeratePhysicalDevices 经最外层枚举物理设备
func (l *Loader) EnumeratePhysicalDevices(instance xvk.Instance) ([]xvk.PhysicalDevice, xvk.Result) {
	enum, ok := xvk.Resolve[xvk.EnumeratePhysicalDevicesFunc](l.GetInstanceProcAddr(instance, xvk.NameEnumeratePhysicalDevices))
	if !ok {
		return nil, xvk.ErrorInitializationFailed
	}
	return enum(instance)
}

// CreateDevice 为参数副本挂上设备链接记录后交给最外层
func (l *Loader) CreateDevice(physical xvk.PhysicalDevice, info *xvk.DeviceCreateInfo, alloc *xvk.AllocationCallbacks) (xvk.Device, xvk.Result) {
	instance, ok := l.driver.InstanceOf(physical)
	if !ok {
		return 0, xvk.ErrorInitializationFailed
	}
	var chained xvk.DeviceCreateInfo
	if info != nil {
		chained = *info
	}
	chained.PNext = l.DeviceChain(chained.PNext)

	create, ok := xvk.Resolve[xvk.CreateDeviceFunc](l.GetInstanceProcAddr(instance, xvk.NameCreateDevice))
	if !ok {
		return 0, xvk.ErrorInitializationFailed
	}
	return create(physical, &chained, alloc)
}

// DestroyDevice 经最外层销毁设备
func (l *Loader) DestroyDevice(device xvk.Device, alloc *xvk.AllocationCallbacks) {
	if destroy, ok := xvk.Resolve[xvk.DestroyDeviceFunc](l.GetDeviceProcAddr(device, xvk.NameDestroyDevice)); ok {
		destroy(device, alloc)
	}
}

// CreateShaderModule 经最外层创建着色器模块
func (l *Loader) CreateShaderModule(device xvk.Device, info *xvk.ShaderModuleCreateInfo, alloc *xvk.AllocationCallbacks) (xvk.ShaderModule, xvk.Result) {
	create, ok := xvk.Resolve[xvk.CreateShaderModuleFunc](l.GetDeviceProcAddr(device, xvk.NameCreateShaderModule))
	if !ok {
		return 0, xvk.ErrorInitializationFailed
	}
	return create(device, info, alloc)
}

// DestroyShaderModule 经最外层销毁着色器模块
func (l *Loader) DestroyShaderModule(device xvk.Device, module xvk.ShaderModule, alloc *xvk.AllocationCallbacks) {
	if destroy, ok := xvk.Resolve[xvk.DestroyShaderModuleFunc](l.GetDeviceProcAddr(device, xvk.NameDestroyShaderModule)); ok {
		destroy(device, module, alloc)
	}
}

// CreateGraphicsPipelines 经最外层创建管线
func (l *Loader) CreateGraphicsPipelines(device xvk.Device, infos []xvk.GraphicsPipelineCreateInfo, alloc *xvk.AllocationCallbacks) ([]xvk.Pipeline, xvk.Result) {
	create, ok := xvk.Resolve[xvk.CreateGraphicsPipelinesFunc](l.GetDeviceProcAddr(device, xvk.NameCreateGraphicsPipelines))
	if !ok {
		return nil, xvk.ErrorInitializationFailed
	}
	return create(device, infos, alloc)
}

// DestroyPipeline 经最外层销毁管线
func (l *Loader) DestroyPipeline(device xvk.Device, pipeline xvk.Pipeline, alloc *xvk.AllocationCallbacks) {
	if destroy, ok := xvk.Resolve[xvk.DestroyPipelineFunc](l.GetDeviceProcAddr(device, xvk.NameDestroyPipeline)); ok {
		destroy(device, pipeline, alloc)
	}
}
