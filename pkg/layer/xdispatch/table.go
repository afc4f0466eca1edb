package xdispatch

import "github.com/omeyang/vkperf/pkg/layer/xvk"

// InstanceTable 实例级分发表，创建实例时一次性解析，之后只读。
type InstanceTable struct {
	Instance                  xvk.Instance
	GetInstanceProcAddr       xvk.GetInstanceProcAddrFunc
	GetPhysicalDeviceProcAddr xvk.GetPhysicalDeviceProcAddrFunc
	DestroyInstance           xvk.DestroyInstanceFunc
	EnumeratePhysicalDevices  xvk.EnumeratePhysicalDevicesFunc
	CreateDevice              xvk.CreateDeviceFunc
}

// DeviceTable 设备级分发表，创建设备时一次性解析，之后只读。
type DeviceTable struct {
	Device                  xvk.Device
	GetDeviceProcAddr       xvk.GetDeviceProcAddrFunc
	DestroyDevice           xvk.DestroyDeviceFunc
	CreateShaderModule      xvk.CreateShaderModuleFunc
	DestroyShaderModule     xvk.DestroyShaderModuleFunc
	CreateGraphicsPipelines xvk.CreateGraphicsPipelinesFunc
	DestroyPipeline         xvk.DestroyPipelineFunc
}

// BuildInstanceTableFunc 用下一层的入口解析函数构建实例分发表
type BuildInstanceTableFunc func(gipa xvk.GetInstanceProcAddrFunc, gpdpa xvk.GetPhysicalDeviceProcAddrFunc, instance xvk.Instance) *InstanceTable

// BuildDeviceTableFunc 用下一层的入口解析函数构建设备分发表
type BuildDeviceTableFunc func(gdpa xvk.GetDeviceProcAddrFunc, device xvk.Device) *DeviceTable

// NewInstanceTable 解析实例级入口。下一层未提供的入口保持为 nil。
func NewInstanceTable(gipa xvk.GetInstanceProcAddrFunc, gpdpa xvk.GetPhysicalDeviceProcAddrFunc, instance xvk.Instance) *InstanceTable {
	t := &InstanceTable{
		Instance:                  instance,
		GetInstanceProcAddr:       gipa,
		GetPhysicalDeviceProcAddr: gpdpa,
	}
	if gipa == nil {
		return t
	}
	t.DestroyInstance, _ = xvk.Resolve[xvk.DestroyInstanceFunc](gipa(instance, xvk.NameDestroyInstance))
	t.EnumeratePhysicalDevices, _ = xvk.Resolve[xvk.EnumeratePhysicalDevicesFunc](gipa(instance, xvk.NameEnumeratePhysicalDevices))
	t.CreateDevice, _ = xvk.Resolve[xvk.CreateDeviceFunc](gipa(instance, xvk.NameCreateDevice))
	return t
}

// NewDeviceTable 解析设备级入口。下一层未提供的入口保持为 nil。
func NewDeviceTable(gdpa xvk.GetDeviceProcAddrFunc, device xvk.Device) *DeviceTable {
	t := &DeviceTable{
		Device:            device,
		GetDeviceProcAddr: gdpa,
	}
	if gdpa == nil {
		return t
	}
	t.DestroyDevice, _ = xvk.Resolve[xvk.DestroyDeviceFunc](gdpa(device, xvk.NameDestroyDevice))
	t.CreateShaderModule, _ = xvk.Resolve[xvk.CreateShaderModuleFunc](gdpa(device, xvk.NameCreateShaderModule))
	t.DestroyShaderModule, _ = xvk.Resolve[xvk.DestroyShaderModuleFunc](gdpa(device, xvk.NameDestroyShaderModule))
	t.CreateGraphicsPipelines, _ = xvk.Resolve[xvk.CreateGraphicsPipelinesFunc](gdpa(device, xvk.NameCreateGraphicsPipelines))
	t.DestroyPipeline, _ = xvk.Resolve[xvk.DestroyPipelineFunc](gdpa(device, xvk.NameDestroyPipeline))
	return t
}
