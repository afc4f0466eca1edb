package xlayer

import "github.com/omeyang/vkperf/pkg/layer/xvk"

//go:generate mockgen -source=next_test.go -destination=mock_next_test.go -package=xlayer

// nextLayer 下一层（或驱动）提供的入口集合
type nextLayer interface {
	CreateInstance(info *xvk.InstanceCreateInfo, alloc *xvk.AllocationCallbacks) (xvk.Instance, xvk.Result)
	DestroyInstance(instance xvk.Instance, alloc *xvk.AllocationCallbacks)
	EnumeratePhysicalDevices(instance xvk.Instance) ([]xvk.PhysicalDevice, xvk.Result)
	CreateDevice(physical xvk.PhysicalDevice, info *xvk.DeviceCreateInfo, alloc *xvk.AllocationCallbacks) (xvk.Device, xvk.Result)
	DestroyDevice(device xvk.Device, alloc *xvk.AllocationCallbacks)
	CreateShaderModule(device xvk.Device, info *xvk.ShaderModuleCreateInfo, alloc *xvk.AllocationCallbacks) (xvk.ShaderModule, xvk.Result)
	DestroyShaderModule(device xvk.Device, module xvk.ShaderModule, alloc *xvk.AllocationCallbacks)
	CreateGraphicsPipelines(device xvk.Device, infos []xvk.GraphicsPipelineCreateInfo, alloc *xvk.AllocationCallbacks) ([]xvk.Pipeline, xvk.Result)
	DestroyPipeline(device xvk.Device, pipeline xvk.Pipeline, alloc *xvk.AllocationCallbacks)
}

// nextProcs 把 next 包装成下一层的入口解析函数
func nextProcs(next nextLayer) (xvk.GetInstanceProcAddrFunc, xvk.GetDeviceProcAddrFunc) {
	gdpa := func(_ xvk.Device, name string) xvk.VoidFunction {
		switch name {
		case xvk.NameDestroyDevice:
			return xvk.DestroyDeviceFunc(next.DestroyDevice)
		case xvk.NameCreateShaderModule:
			return xvk.CreateShaderModuleFunc(next.CreateShaderModule)
		case xvk.NameDestroyShaderModule:
			return xvk.DestroyShaderModuleFunc(next.DestroyShaderModule)
		case xvk.NameCreateGraphicsPipelines:
			return xvk.CreateGraphicsPipelinesFunc(next.CreateGraphicsPipelines)
		case xvk.NameDestroyPipeline:
			return xvk.DestroyPipelineFunc(next.DestroyPipeline)
		default:
			return nil
		}
	}
	gipa := func(_ xvk.Instance, name string) xvk.VoidFunction {
		switch name {
		case xvk.NameCreateInstance:
			return xvk.CreateInstanceFunc(next.CreateInstance)
		case xvk.NameDestroyInstance:
			return xvk.DestroyInstanceFunc(next.DestroyInstance)
		case xvk.NameEnumeratePhysicalDevices:
			return xvk.EnumeratePhysicalDevicesFunc(next.EnumeratePhysicalDevices)
		case xvk.NameCreateDevice:
			return xvk.CreateDeviceFunc(next.CreateDevice)
		default:
			return gdpa(0, name)
		}
	}
	return gipa, gdpa
}

// instanceInfo 构造只有一条链接记录的实例创建参数，links 为从本层开始的各层链接。
func instanceInfo(links ...*xvk.LayerInstanceLink) (*xvk.InstanceCreateInfo, *xvk.LayerInstanceCreateInfo) {
	for i := len(links) - 2; i >= 0; i-- {
		links[i].Next = links[i+1]
	}
	rec := &xvk.LayerInstanceCreateInfo{Function: xvk.LayerLinkInfo}
	if len(links) > 0 {
		rec.LayerInfo = links[0]
	}
	data := &xvk.LayerInstanceCreateInfo{PNext: rec, Function: xvk.LoaderDataCallback}
	return &xvk.InstanceCreateInfo{PNext: data}, rec
}

func deviceInfo(gipa xvk.GetInstanceProcAddrFunc, gdpa xvk.GetDeviceProcAddrFunc) (*xvk.DeviceCreateInfo, *xvk.LayerDeviceCreateInfo) {
	rec := &xvk.LayerDeviceCreateInfo{
		Function: xvk.LayerLinkInfo,
		LayerInfo: &xvk.LayerDeviceLink{
			NextGetInstanceProcAddr: gipa,
			NextGetDeviceProcAddr:   gdpa,
		},
	}
	return &xvk.DeviceCreateInfo{PNext: rec}, rec
}
