package xdispatch

import (
	"reflect"
	"sync"

	"github.com/omeyang/vkperf/pkg/layer/xvk"
)

// Key 由对象句柄值派生的映射键
type Key uint64

// KeyOf 返回句柄对应的键
func KeyOf(h xvk.Handle) Key {
	return Key(h.Handle())
}

// Registry 存活对象的分发表注册表，并发安全。
// 必须通过 [New] 创建。
type Registry struct {
	instMu    sync.RWMutex
	instances map[Key]*InstanceTable
	parents   map[Key]xvk.Instance // 子对象 -> 所属实例

	devMu   sync.RWMutex
	devices map[Key]*DeviceTable

	maxObjects int
}

// New 创建空注册表
func New(opts ...Option) *Registry {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Registry{
		instances:  make(map[Key]*InstanceTable),
		parents:    make(map[Key]xvk.Instance),
		devices:    make(map[Key]*DeviceTable),
		maxObjects: o.maxObjects,
	}
}

func (r *Registry) full(n int) bool {
	return r.maxObjects > 0 && n >= r.maxObjects
}

// AddInstance 注册实例的分发表。
//
// 存储已满或键已存在时返回 false。键已存在只会在协议被违反时出现，
// 调用方应视为缺陷而不是可恢复的情况。
func (r *Registry) AddInstance(instance xvk.Instance, table *InstanceTable) bool {
	if table == nil {
		return false
	}
	key := KeyOf(instance)

	r.instMu.Lock()
	defer r.instMu.Unlock()

	if _, exists := r.instances[key]; exists || r.full(len(r.instances)) {
		return false
	}
	r.instances[key] = table
	return true
}

// AddPhysicalDevices 记录物理设备到所属实例的关联。
// 实例未注册或存储已满时返回 false，此时不记录任何关联。
// 重复记录同一关联是允许的（枚举可以多次调用）。
func (r *Registry) AddPhysicalDevices(instance xvk.Instance, devices ...xvk.PhysicalDevice) bool {
	r.instMu.Lock()
	defer r.instMu.Unlock()

	if _, ok := r.instances[KeyOf(instance)]; !ok {
		return false
	}
	added := 0
	for _, pd := range devices {
		if _, ok := r.parents[KeyOf(pd)]; !ok {
			added++
		}
	}
	if r.maxObjects > 0 && len(r.parents)+added > r.maxObjects {
		return false
	}
	for _, pd := range devices {
		r.parents[KeyOf(pd)] = instance
	}
	return true
}

// RemoveInstance 删除实例条目以及所有指向该实例的子对象关联。
// 返回被删除的分发表；实例未登记时 ok 为 false。
// 并发删除同一实例时只有一个调用者拿到分发表。
func (r *Registry) RemoveInstance(instance xvk.Instance) (*InstanceTable, bool) {
	key := KeyOf(instance)

	r.instMu.Lock()
	defer r.instMu.Unlock()

	table, ok := r.instances[key]
	delete(r.instances, key)
	for child, parent := range r.parents {
		if parent == instance {
			delete(r.parents, child)
		}
	}
	return table, ok
}

// GetInstance 返回子对象关联的实例句柄
func (r *Registry) GetInstance(child Key) (xvk.Instance, bool) {
	r.instMu.RLock()
	defer r.instMu.RUnlock()

	inst, ok := r.parents[child]
	return inst, ok
}

// Instance 返回实例的分发表
func (r *Registry) Instance(key Key) (*InstanceTable, bool) {
	r.instMu.RLock()
	defer r.instMu.RUnlock()

	t, ok := r.instances[key]
	return t, ok
}

// InstanceCount 返回存活实例数
func (r *Registry) InstanceCount() int {
	r.instMu.RLock()
	defer r.instMu.RUnlock()
	return len(r.instances)
}

// AddDevice 注册设备的分发表，语义同 [Registry.AddInstance]。
func (r *Registry) AddDevice(device xvk.Device, table *DeviceTable) bool {
	if table == nil {
		return false
	}
	key := KeyOf(device)

	r.devMu.Lock()
	defer r.devMu.Unlock()

	if _, exists := r.devices[key]; exists || r.full(len(r.devices)) {
		return false
	}
	r.devices[key] = table
	return true
}

// RemoveDevice 删除设备条目并返回被删除的分发表
func (r *Registry) RemoveDevice(device xvk.Device) (*DeviceTable, bool) {
	key := KeyOf(device)

	r.devMu.Lock()
	defer r.devMu.Unlock()

	table, ok := r.devices[key]
	delete(r.devices, key)
	return table, ok
}

// Device 返回设备的分发表
func (r *Registry) Device(key Key) (*DeviceTable, bool) {
	r.devMu.RLock()
	defer r.devMu.RUnlock()

	t, ok := r.devices[key]
	return t, ok
}

// DeviceCount 返回存活设备数
func (r *Registry) DeviceCount() int {
	r.devMu.RLock()
	defer r.devMu.RUnlock()
	return len(r.devices)
}

// NextInstanceProc 取出实例分发表中由 member 选择的入口。
//
// 对象未注册或入口为 nil 时 ok 为 false。
//
// 示例：
//
//	destroy, ok := xdispatch.NextInstanceProc(reg, instance,
//		func(t *xdispatch.InstanceTable) xvk.DestroyInstanceFunc { return t.DestroyInstance })
func NextInstanceProc[F any](r *Registry, h xvk.Handle, member func(*InstanceTable) F) (F, bool) {
	var zero F
	t, ok := r.Instance(KeyOf(h))
	if !ok {
		return zero, false
	}
	f := member(t)
	if isNilFunc(f) {
		return zero, false
	}
	return f, true
}

// NextDeviceProc 取出设备分发表中由 member 选择的入口，语义同 [NextInstanceProc]。
func NextDeviceProc[F any](r *Registry, h xvk.Handle, member func(*DeviceTable) F) (F, bool) {
	var zero F
	t, ok := r.Device(KeyOf(h))
	if !ok {
		return zero, false
	}
	f := member(t)
	if isNilFunc(f) {
		return zero, false
	}
	return f, true
}

// isNilFunc 判断入口是否为空。F 为函数类型时不能直接与 nil 比较。
func isNilFunc[F any](f F) bool {
	v := reflect.ValueOf(f)
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
