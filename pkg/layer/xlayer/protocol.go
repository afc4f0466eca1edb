package xlayer

import (
	"context"
	"errors"

	"github.com/omeyang/vkperf/pkg/layer/xdispatch"
	"github.com/omeyang/vkperf/pkg/layer/xvk"
	"github.com/omeyang/vkperf/pkg/observability/xlog"
	"github.com/omeyang/vkperf/pkg/observability/xmetrics"
)

// =============================================================================
// 状态机步骤
// =============================================================================

// locateInstance Locate：只读遍历扩展链。
func locateInstance(info *xvk.InstanceCreateInfo) (*xvk.LayerInstanceCreateInfo, error) {
	rec, ok := xvk.FindInstanceLink(info)
	if !ok {
		return nil, xvk.ErrNoLayerLink
	}
	return rec, nil
}

// advanceInstance Extract + Advance：校验通过后才修改记录。
// 前置条件：本层未推进过 rec，且 rec 仍带有下一层的入口解析函数。
// 后置条件：rec.LayerInfo == 返回值.Next。
func (l *LayerData) advanceInstance(rec *xvk.LayerInstanceCreateInfo) (*xvk.LayerInstanceLink, error) {
	if rec.AdvancedBy(l.id) {
		return nil, xvk.ErrAlreadyAdvanced
	}
	if rec.LayerInfo == nil || rec.LayerInfo.NextGetInstanceProcAddr == nil {
		return nil, xvk.ErrNoLayerLink
	}
	return rec.Advance(l.id)
}

func locateDevice(info *xvk.DeviceCreateInfo) (*xvk.LayerDeviceCreateInfo, error) {
	rec, ok := xvk.FindDeviceLink(info)
	if !ok {
		return nil, xvk.ErrNoLayerLink
	}
	return rec, nil
}

func (l *LayerData) advanceDevice(rec *xvk.LayerDeviceCreateInfo) (*xvk.LayerDeviceLink, error) {
	if rec.AdvancedBy(l.id) {
		return nil, xvk.ErrAlreadyAdvanced
	}
	if rec.LayerInfo == nil ||
		rec.LayerInfo.NextGetInstanceProcAddr == nil ||
		rec.LayerInfo.NextGetDeviceProcAddr == nil {
		return nil, xvk.ErrNoLayerLink
	}
	return rec.Advance(l.id)
}

// chainFailure 记录链接记录相关的失败。重复推进说明调用方把同一参数交给了本层两次。
func (l *LayerData) chainFailure(ctx context.Context, op string, err error) xvk.Result {
	level := l.logger.Warn
	if errors.Is(err, xvk.ErrAlreadyAdvanced) {
		level = l.logger.Error
	}
	level(ctx, "loader link unavailable", xlog.Operation(op), xlog.Err(err))
	return xvk.ErrorInitializationFailed
}

// =============================================================================
// 实例
// =============================================================================

// CreateInstance 实例创建跳板。
//
// 只有下一层返回 Success 时才登记，其他结果码（包括非零成功码）连同句柄原样返回。
// 下一层创建成功但登记失败时返回新句柄和 ErrorOutOfHostMemory，
// 该实例在下一层仍然存活。
func (l *LayerData) CreateInstance(ctx context.Context, info *xvk.InstanceCreateInfo, alloc *xvk.AllocationCallbacks) (xvk.Instance, xvk.Result) {
	ctx, end := l.observe(ctx, xvk.NameCreateInstance)

	rec, err := locateInstance(info)
	if err != nil {
		res := l.chainFailure(ctx, xvk.NameCreateInstance, err)
		end(res)
		return 0, res
	}
	link, err := l.advanceInstance(rec)
	if err != nil {
		res := l.chainFailure(ctx, xvk.NameCreateInstance, err)
		end(res)
		return 0, res
	}
	gipa, gpdpa := link.NextGetInstanceProcAddr, link.NextGetPhysicalDeviceProcAddr

	create, ok := xvk.Resolve[xvk.CreateInstanceFunc](gipa(0, xvk.NameCreateInstance))
	if !ok {
		l.logger.Warn(ctx, "next layer does not provide entry", xlog.Operation(xvk.NameCreateInstance))
		end(xvk.ErrorInitializationFailed)
		return 0, xvk.ErrorInitializationFailed
	}
	instance, res := create(info, alloc)
	if res != xvk.Success {
		end(res)
		return instance, res
	}

	if !l.registry.AddInstance(instance, l.buildInstance(gipa, gpdpa, instance)) {
		l.logger.Error(ctx, "register instance failed, object orphaned",
			xlog.Operation(xvk.NameCreateInstance), xlog.Handle(instance))
		end(xvk.ErrorOutOfHostMemory)
		return instance, xvk.ErrorOutOfHostMemory
	}
	end(res, xmetrics.Uint64("handle", instance.Handle()))
	return instance, res
}

// DestroyInstance 先删除实例登记（连同物理设备关联）再转发。
// 未登记的实例只记录日志，不转发。
func (l *LayerData) DestroyInstance(ctx context.Context, instance xvk.Instance, alloc *xvk.AllocationCallbacks) {
	ctx, end := l.observe(ctx, xvk.NameDestroyInstance, xmetrics.Uint64("handle", instance.Handle()))

	table, ok := l.registry.RemoveInstance(instance)
	if !ok {
		l.logger.Debug(ctx, "destroy of unregistered instance", xlog.Handle(instance))
		end(xvk.Success)
		return
	}
	if table.DestroyInstance != nil {
		table.DestroyInstance(instance, alloc)
	}
	end(xvk.Success)
}

// EnumeratePhysicalDevices 转发枚举并记录物理设备到实例的关联。
func (l *LayerData) EnumeratePhysicalDevices(ctx context.Context, instance xvk.Instance) ([]xvk.PhysicalDevice, xvk.Result) {
	ctx, end := l.observe(ctx, xvk.NameEnumeratePhysicalDevices, xmetrics.Uint64("handle", instance.Handle()))

	enum, ok := xdispatch.NextInstanceProc(l.registry, instance,
		func(t *xdispatch.InstanceTable) xvk.EnumeratePhysicalDevicesFunc { return t.EnumeratePhysicalDevices })
	if !ok {
		res := l.violated(ctx, xvk.NameEnumeratePhysicalDevices, ErrUnregistered, xlog.Handle(instance))
		end(res)
		return nil, res
	}

	devices, res := enum(instance)
	if !res.Succeeded() {
		end(res)
		return devices, res
	}
	if !l.registry.AddPhysicalDevices(instance, devices...) {
		l.logger.Error(ctx, "record physical devices failed",
			xlog.Handle(instance), xlog.Count(int64(len(devices))))
		end(xvk.ErrorOutOfHostMemory)
		return devices, xvk.ErrorOutOfHostMemory
	}
	end(res, xmetrics.Int64("count", int64(len(devices))))
	return devices, res
}

// =============================================================================
// 设备
// =============================================================================

// CreateDevice 设备创建跳板。物理设备必须已关联到已登记的实例。
func (l *LayerData) CreateDevice(ctx context.Context, physical xvk.PhysicalDevice, info *xvk.DeviceCreateInfo, alloc *xvk.AllocationCallbacks) (xvk.Device, xvk.Result) {
	ctx, end := l.observe(ctx, xvk.NameCreateDevice, xmetrics.Uint64("physical_device", physical.Handle()))

	instance, ok := l.registry.GetInstance(xdispatch.KeyOf(physical))
	if ok {
		_, ok = l.registry.Instance(xdispatch.KeyOf(instance))
	}
	if !ok {
		res := l.violated(ctx, xvk.NameCreateDevice, ErrMissingOwner, xlog.Handle(physical))
		end(res)
		return 0, res
	}

	rec, err := locateDevice(info)
	if err != nil {
		res := l.chainFailure(ctx, xvk.NameCreateDevice, err)
		end(res)
		return 0, res
	}
	link, err := l.advanceDevice(rec)
	if err != nil {
		res := l.chainFailure(ctx, xvk.NameCreateDevice, err)
		end(res)
		return 0, res
	}
	gdpa := link.NextGetDeviceProcAddr

	create, ok := xvk.Resolve[xvk.CreateDeviceFunc](link.NextGetInstanceProcAddr(instance, xvk.NameCreateDevice))
	if !ok {
		l.logger.Warn(ctx, "next layer does not provide entry", xlog.Operation(xvk.NameCreateDevice))
		end(xvk.ErrorInitializationFailed)
		return 0, xvk.ErrorInitializationFailed
	}
	device, res := create(physical, info, alloc)
	if res != xvk.Success {
		end(res)
		return device, res
	}

	if !l.registry.AddDevice(device, l.buildDevice(gdpa, device)) {
		l.logger.Error(ctx, "register device failed, object orphaned",
			xlog.Operation(xvk.NameCreateDevice), xlog.Handle(device))
		end(xvk.ErrorOutOfHostMemory)
		return device, xvk.ErrorOutOfHostMemory
	}
	end(res, xmetrics.Uint64("handle", device.Handle()))
	return device, res
}

// DestroyDevice 先删除设备登记再转发
func (l *LayerData) DestroyDevice(ctx context.Context, device xvk.Device, alloc *xvk.AllocationCallbacks) {
	ctx, end := l.observe(ctx, xvk.NameDestroyDevice, xmetrics.Uint64("handle", device.Handle()))

	table, ok := l.registry.RemoveDevice(device)
	if !ok {
		l.logger.Debug(ctx, "destroy of unregistered device", xlog.Handle(device))
		end(xvk.Success)
		return
	}
	if table.DestroyDevice != nil {
		table.DestroyDevice(device, alloc)
	}
	end(xvk.Success)
}
