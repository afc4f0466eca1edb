package xlayer

import (
	"context"

	"github.com/omeyang/vkperf/pkg/layer/xdispatch"
	"github.com/omeyang/vkperf/pkg/layer/xvk"
)

// GetInstanceProcAddr 本层的实例级入口解析。
// 被拦截的入口返回本层跳板，其余入口交给实例分发表中下一层的解析函数。
func (l *LayerData) GetInstanceProcAddr(instance xvk.Instance, name string) xvk.VoidFunction {
	switch name {
	case xvk.NameGetInstanceProcAddr:
		return xvk.GetInstanceProcAddrFunc(l.GetInstanceProcAddr)
	case xvk.NameCreateInstance:
		return xvk.CreateInstanceFunc(func(info *xvk.InstanceCreateInfo, alloc *xvk.AllocationCallbacks) (xvk.Instance, xvk.Result) {
			return l.CreateInstance(context.Background(), info, alloc)
		})
	case xvk.NameDestroyInstance:
		return xvk.DestroyInstanceFunc(func(instance xvk.Instance, alloc *xvk.AllocationCallbacks) {
			l.DestroyInstance(context.Background(), instance, alloc)
		})
	case xvk.NameEnumeratePhysicalDevices:
		return xvk.EnumeratePhysicalDevicesFunc(func(instance xvk.Instance) ([]xvk.PhysicalDevice, xvk.Result) {
			return l.EnumeratePhysicalDevices(context.Background(), instance)
		})
	case xvk.NameCreateDevice:
		return xvk.CreateDeviceFunc(func(physical xvk.PhysicalDevice, info *xvk.DeviceCreateInfo, alloc *xvk.AllocationCallbacks) (xvk.Device, xvk.Result) {
			return l.CreateDevice(context.Background(), physical, info, alloc)
		})
	}
	if fn := l.deviceEntry(name); fn != nil {
		return fn
	}

	table, ok := l.registry.Instance(xdispatch.KeyOf(instance))
	if !ok || table.GetInstanceProcAddr == nil {
		return nil
	}
	return table.GetInstanceProcAddr(instance, name)
}

// GetDeviceProcAddr 本层的设备级入口解析
func (l *LayerData) GetDeviceProcAddr(device xvk.Device, name string) xvk.VoidFunction {
	if fn := l.deviceEntry(name); fn != nil {
		return fn
	}
	table, ok := l.registry.Device(xdispatch.KeyOf(device))
	if !ok || table.GetDeviceProcAddr == nil {
		return nil
	}
	return table.GetDeviceProcAddr(device, name)
}

// deviceEntry 返回被拦截的设备级入口，未拦截时返回 nil。
func (l *LayerData) deviceEntry(name string) xvk.VoidFunction {
	switch name {
	case xvk.NameGetDeviceProcAddr:
		return xvk.GetDeviceProcAddrFunc(l.GetDeviceProcAddr)
	case xvk.NameDestroyDevice:
		return xvk.DestroyDeviceFunc(func(device xvk.Device, alloc *xvk.AllocationCallbacks) {
			l.DestroyDevice(context.Background(), device, alloc)
		})
	case xvk.NameCreateShaderModule:
		return xvk.CreateShaderModuleFunc(func(device xvk.Device, info *xvk.ShaderModuleCreateInfo, alloc *xvk.AllocationCallbacks) (xvk.ShaderModule, xvk.Result) {
			r := l.CreateShaderModule(context.Background(), device, info, alloc)
			return r.Module, r.Result
		})
	case xvk.NameDestroyShaderModule:
		return xvk.DestroyShaderModuleFunc(func(device xvk.Device, module xvk.ShaderModule, alloc *xvk.AllocationCallbacks) {
			l.DestroyShaderModule(context.Background(), device, module, alloc)
		})
	case xvk.NameCreateGraphicsPipelines:
		return xvk.CreateGraphicsPipelinesFunc(func(device xvk.Device, infos []xvk.GraphicsPipelineCreateInfo, alloc *xvk.AllocationCallbacks) ([]xvk.Pipeline, xvk.Result) {
			r := l.CreateGraphicsPipelines(context.Background(), device, infos, alloc)
			return r.Pipelines, r.Result
		})
	case xvk.NameDestroyPipeline:
		return xvk.DestroyPipelineFunc(func(device xvk.Device, pipeline xvk.Pipeline, alloc *xvk.AllocationCallbacks) {
			l.DestroyPipeline(context.Background(), device, pipeline, alloc)
		})
	default:
		return nil
	}
}
