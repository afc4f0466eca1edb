package xvk

// VoidFunction 由 GetProcAddr 返回的不透明入口函数，
// 调用方按入口名称断言为对应的具体函数类型。nil 表示该入口不存在。
type VoidFunction any

// AllocationCallbacks 调用方提供的分配回调，拦截层只原样透传。
type AllocationCallbacks struct {
	UserData any
}

// 入口解析函数
type (
	// GetInstanceProcAddrFunc 解析实例级入口
	GetInstanceProcAddrFunc func(instance Instance, name string) VoidFunction

	// GetPhysicalDeviceProcAddrFunc 解析物理设备级入口
	GetPhysicalDeviceProcAddrFunc func(instance Instance, name string) VoidFunction

	// GetDeviceProcAddrFunc 解析设备级入口
	GetDeviceProcAddrFunc func(device Device, name string) VoidFunction
)

// 对象生命周期入口
type (
	CreateInstanceFunc           func(info *InstanceCreateInfo, alloc *AllocationCallbacks) (Instance, Result)
	DestroyInstanceFunc          func(instance Instance, alloc *AllocationCallbacks)
	EnumeratePhysicalDevicesFunc func(instance Instance) ([]PhysicalDevice, Result)
	CreateDeviceFunc             func(physical PhysicalDevice, info *DeviceCreateInfo, alloc *AllocationCallbacks) (Device, Result)
	DestroyDeviceFunc            func(device Device, alloc *AllocationCallbacks)
	CreateShaderModuleFunc       func(device Device, info *ShaderModuleCreateInfo, alloc *AllocationCallbacks) (ShaderModule, Result)
	DestroyShaderModuleFunc      func(device Device, module ShaderModule, alloc *AllocationCallbacks)
	CreateGraphicsPipelinesFunc  func(device Device, infos []GraphicsPipelineCreateInfo, alloc *AllocationCallbacks) ([]Pipeline, Result)
	DestroyPipelineFunc          func(device Device, pipeline Pipeline, alloc *AllocationCallbacks)
)

// 入口名称
const (
	NameGetInstanceProcAddr       = "vkGetInstanceProcAddr"
	NameGetPhysicalDeviceProcAddr = "vk_layerGetPhysicalDeviceProcAddr"
	NameGetDeviceProcAddr         = "vkGetDeviceProcAddr"
	NameCreateInstance            = "vkCreateInstance"
	NameDestroyInstance           = "vkDestroyInstance"
	NameEnumeratePhysicalDevices  = "vkEnumeratePhysicalDevices"
	NameCreateDevice              = "vkCreateDevice"
	NameDestroyDevice             = "vkDestroyDevice"
	NameCreateShaderModule        = "vkCreateShaderModule"
	NameDestroyShaderModule       = "vkDestroyShaderModule"
	NameCreateGraphicsPipelines   = "vkCreateGraphicsPipelines"
	NameDestroyPipeline           = "vkDestroyPipeline"
)

// Resolve 将不透明入口断言为具体函数类型 F。
// fn 为 nil 或类型不符时返回 F 的零值和 false。
func Resolve[F any](fn VoidFunction) (F, bool) {
	f, ok := fn.(F)
	return f, ok
}
