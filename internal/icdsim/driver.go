package icdsim

import (
	"fmt"
	"sync"

	"github.com/omeyang/vkperf/pkg/layer/xvk"
	"github.com/omeyang/vkperf/pkg/util/xid"
)

// Stats 驱动中存活的对象数
type Stats struct {
	Instances       int
	PhysicalDevices int
	Devices         int
	ShaderModules   int
	Pipelines       int
}

// Driver 模拟驱动，所有入口并发安全。
type Driver struct {
	ids             *xid.Generator
	physicalDevices int

	mu        sync.Mutex
	instances map[xvk.Instance][]xvk.PhysicalDevice
	physical  map[xvk.PhysicalDevice]xvk.Instance
	devices   map[xvk.Device]xvk.PhysicalDevice
	modules   map[xvk.ShaderModule]xvk.Device
	pipelines map[xvk.Pipeline]xvk.Device
	failures  map[string]xvk.Result
	calls     map[string]int
}

// NewDriver 创建驱动
func NewDriver(opts ...Option) (*Driver, error) {
	o := options{physicalDevices: DefaultPhysicalDevices}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.physicalDevices <= 0 {
		return nil, ErrNoPhysicalDevices
	}
	if o.ids == nil {
		g, err := xid.NewGenerator()
		if err != nil {
			return nil, fmt.Errorf("icdsim: handle generator: %w", err)
		}
		o.ids = g
	}
	return &Driver{
		ids:             o.ids,
		physicalDevices: o.physicalDevices,
		instances:       make(map[xvk.Instance][]xvk.PhysicalDevice),
		physical:        make(map[xvk.PhysicalDevice]xvk.Instance),
		devices:         make(map[xvk.Device]xvk.PhysicalDevice),
		modules:         make(map[xvk.ShaderModule]xvk.Device),
		pipelines:       make(map[xvk.Pipeline]xvk.Device),
		failures:        make(map[string]xvk.Result),
		calls:           make(map[string]int),
	}, nil
}

// Fail 让入口 name 之后的调用都返回 res，传入成功码取消注入。
func (d *Driver) Fail(name string, res xvk.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if res.Succeeded() {
		delete(d.failures, name)
		return
	}
	d.failures[name] = res
}

// Calls 返回入口 name 被调用的次数
func (d *Driver) Calls(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[name]
}

// Live 返回存活对象数
func (d *Driver) Live() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{
		Instances:       len(d.instances),
		PhysicalDevices: len(d.physical),
		Devices:         len(d.devices),
		ShaderModules:   len(d.modules),
		Pipelines:       len(d.pipelines),
	}
}

// InstanceOf 返回物理设备所属的实例
func (d *Driver) InstanceOf(pd xvk.PhysicalDevice) (xvk.Instance, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	inst, ok := d.physical[pd]
	return inst, ok
}

// enter 记录一次调用，返回注入的失败码。调用方必须持有 d.mu。
func (d *Driver) enter(name string) xvk.Result {
	d.calls[name]++
	if res, ok := d.failures[name]; ok {
		return res
	}
	return xvk.Success
}

func (d *Driver) newHandle() (uint64, xvk.Result) {
	id, err := d.ids.New()
	if err != nil {
		return 0, xvk.ErrorOutOfHostMemory
	}
	return id, xvk.Success
}

// GetInstanceProcAddr 解析驱动入口，实例级和设备级入口都可以通过它取得。
func (d *Driver) GetInstanceProcAddr(_ xvk.Instance, name string) xvk.VoidFunction {
	switch name {
	case xvk.NameGetInstanceProcAddr:
		return xvk.GetInstanceProcAddrFunc(d.GetInstanceProcAddr)
	case xvk.NameCreateInstance:
		return xvk.CreateInstanceFunc(d.CreateInstance)
	case xvk.NameDestroyInstance:
		return xvk.DestroyInstanceFunc(d.DestroyInstance)
	case xvk.NameEnumeratePhysicalDevices:
		return xvk.EnumeratePhysicalDevicesFunc(d.EnumeratePhysicalDevices)
	case xvk.NameCreateDevice:
		return xvk.CreateDeviceFunc(d.CreateDevice)
	default:
		return d.GetDeviceProcAddr(0, name)
	}
}

// GetDeviceProcAddr 解析设备级入口
func (d *Driver) GetDeviceProcAddr(_ xvk.Device, name string) xvk.VoidFunction {
	switch name {
	case xvk.NameGetDeviceProcAddr:
		return xvk.GetDeviceProcAddrFunc(d.GetDeviceProcAddr)
	case xvk.NameDestroyDevice:
		return xvk.DestroyDeviceFunc(d.DestroyDevice)
	case xvk.NameCreateShaderModule:
		return xvk.CreateShaderModuleFunc(d.CreateShaderModule)
	case xvk.NameDestroyShaderModule:
		return xvk.DestroyShaderModuleFunc(d.DestroyShaderModule)
	case xvk.NameCreateGraphicsPipelines:
		return xvk.CreateGraphicsPipelinesFunc(d.CreateGraphicsPipelines)
	case xvk.NameDestroyPipeline:
		return xvk.DestroyPipelineFunc(d.DestroyPipeline)
	default:
		return nil
	}
}

// CreateInstance 创建实例及其物理设备
func (d *Driver) CreateInstance(_ *xvk.InstanceCreateInfo, _ *xvk.AllocationCallbacks) (xvk.Instance, xvk.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if res := d.enter(xvk.NameCreateInstance); !res.Succeeded() {
		return 0, res
	}

	id, res := d.newHandle()
	if !res.Succeeded() {
		return 0, res
	}
	inst := xvk.Instance(id)
	pds := make([]xvk.PhysicalDevice, 0, d.physicalDevices)
	for range d.physicalDevices {
		id, res := d.newHandle()
		if !res.Succeeded() {
			for _, pd := range pds {
				delete(d.physical, pd)
			}
			return 0, res
		}
		pd := xvk.PhysicalDevice(id)
		pds = append(pds, pd)
		d.physical[pd] = inst
	}
	d.instances[inst] = pds
	return inst, xvk.Success
}

// DestroyInstance 销毁实例及其物理设备
func (d *Driver) DestroyInstance(instance xvk.Instance, _ *xvk.AllocationCallbacks) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enter(xvk.NameDestroyInstance)

	for _, pd := range d.instances[instance] {
		delete(d.physical, pd)
	}
	delete(d.instances, instance)
}

// EnumeratePhysicalDevices 返回实例的物理设备
func (d *Driver) EnumeratePhysicalDevices(instance xvk.Instance) ([]xvk.PhysicalDevice, xvk.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if res := d.enter(xvk.NameEnumeratePhysicalDevices); !res.Succeeded() {
		return nil, res
	}
	pds, ok := d.instances[instance]
	if !ok {
		return nil, xvk.ErrorInitializationFailed
	}
	return append([]xvk.PhysicalDevice(nil), pds...), xvk.Success
}

// CreateDevice 在物理设备上创建逻辑设备
func (d *Driver) CreateDevice(physical xvk.PhysicalDevice, _ *xvk.DeviceCreateInfo, _ *xvk.AllocationCallbacks) (xvk.Device, xvk.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if res := d.enter(xvk.NameCreateDevice); !res.Succeeded() {
		return 0, res
	}
	if _, ok := d.physical[physical]; !ok {
		return 0, xvk.ErrorInitializationFailed
	}
	id, res := d.newHandle()
	if !res.Succeeded() {
		return 0, res
	}
	dev := xvk.Device(id)
	d.devices[dev] = physical
	return dev, xvk.Success
}

// DestroyDevice 销毁设备
func (d *Driver) DestroyDevice(device xvk.Device, _ *xvk.AllocationCallbacks) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enter(xvk.NameDestroyDevice)
	delete(d.devices, device)
}

// CreateShaderModule 创建着色器模块，空字节码返回 ErrorInvalidShader。
func (d *Driver) CreateShaderModule(device xvk.Device, info *xvk.ShaderModuleCreateInfo, _ *xvk.AllocationCallbacks) (xvk.ShaderModule, xvk.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if res := d.enter(xvk.NameCreateShaderModule); !res.Succeeded() {
		return 0, res
	}
	if _, ok := d.devices[device]; !ok {
		return 0, xvk.ErrorDeviceLost
	}
	if info == nil || len(info.Code) == 0 {
		return 0, xvk.ErrorInvalidShader
	}
	id, res := d.newHandle()
	if !res.Succeeded() {
		return 0, res
	}
	module := xvk.ShaderModule(id)
	d.modules[module] = device
	return module, xvk.Success
}

// DestroyShaderModule 销毁着色器模块
func (d *Driver) DestroyShaderModule(_ xvk.Device, module xvk.ShaderModule, _ *xvk.AllocationCallbacks) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enter(xvk.NameDestroyShaderModule)
	delete(d.modules, module)
}

// CreateGraphicsPipelines 为每个创建参数生成一条管线。
// 引用了不存在的着色器模块时整批失败。
func (d *Driver) CreateGraphicsPipelines(device xvk.Device, infos []xvk.GraphicsPipelineCreateInfo, _ *xvk.AllocationCallbacks) ([]xvk.Pipeline, xvk.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if res := d.enter(xvk.NameCreateGraphicsPipelines); !res.Succeeded() {
		return nil, res
	}
	if _, ok := d.devices[device]; !ok {
		return nil, xvk.ErrorDeviceLost
	}
	for _, info := range infos {
		for _, stage := range info.Stages {
			if owner, ok := d.modules[stage.Module]; !ok || owner != device {
				return nil, xvk.ErrorInvalidShader
			}
		}
	}

	pipelines := make([]xvk.Pipeline, 0, len(infos))
	for range infos {
		id, res := d.newHandle()
		if !res.Succeeded() {
			for _, p := range pipelines {
				delete(d.pipelines, p)
			}
			return nil, res
		}
		p := xvk.Pipeline(id)
		pipelines = append(pipelines, p)
		d.pipelines[p] = device
	}
	return pipelines, xvk.Success
}

// DestroyPipeline 销毁管线
func (d *Driver) DestroyPipeline(_ xvk.Device, pipeline xvk.Pipeline, _ *xvk.AllocationCallbacks) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enter(xvk.NameDestroyPipeline)
	delete(d.pipelines, pipeline)
}
