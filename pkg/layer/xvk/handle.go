package xvk

import "fmt"

// Handle 所有对象句柄的公共接口，句柄值即 64 位整数。
type Handle interface {
	// Handle 返回句柄的原始值
	Handle() uint64
}

// 对象句柄。零值表示空句柄。
type (
	Instance       uint64
	PhysicalDevice uint64
	Device         uint64
	ShaderModule   uint64
	Pipeline       uint64
)

// Handle 实现 Handle 接口
func (h Instance) Handle() uint64 { return uint64(h) }

// Handle 实现 Handle 接口
func (h PhysicalDevice) Handle() uint64 { return uint64(h) }

// Handle 实现 Handle 接口
func (h Device) Handle() uint64 { return uint64(h) }

// Handle 实现 Handle 接口
func (h ShaderModule) Handle() uint64 { return uint64(h) }

// Handle 实现 Handle 接口
func (h Pipeline) Handle() uint64 { return uint64(h) }

func (h Instance) String() string       { return formatHandle("Instance", uint64(h)) }
func (h PhysicalDevice) String() string { return formatHandle("PhysicalDevice", uint64(h)) }
func (h Device) String() string         { return formatHandle("Device", uint64(h)) }
func (h ShaderModule) String() string   { return formatHandle("ShaderModule", uint64(h)) }
func (h Pipeline) String() string       { return formatHandle("Pipeline", uint64(h)) }

func formatHandle(kind string, v uint64) string {
	return fmt.Sprintf("%s(%#x)", kind, v)
}
