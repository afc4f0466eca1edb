package xvk

import (
	"github.com/google/uuid"

	"github.com/omeyang/vkperf/pkg/layer/xchain"
)

// StructureType 扩展记录类型判别值，数值与图形 API 保持一致。
type StructureType int32

// 结构体类型
const (
	StructureTypeApplicationInfo            StructureType = 0
	StructureTypeInstanceCreateInfo         StructureType = 1
	StructureTypeDeviceQueueCreateInfo      StructureType = 2
	StructureTypeDeviceCreateInfo           StructureType = 3
	StructureTypeShaderModuleCreateInfo     StructureType = 16
	StructureTypeGraphicsPipelineCreateInfo StructureType = 28
	StructureTypeLoaderInstanceCreateInfo   StructureType = 47
	StructureTypeLoaderDeviceCreateInfo     StructureType = 48
)

// LayerFunction 区分同为 loader 创建信息的不同用途。
type LayerFunction int32

// loader 创建信息用途
const (
	LayerLinkInfo                   LayerFunction = 0
	LoaderDataCallback              LayerFunction = 1
	LoaderLayerCreateDeviceCallback LayerFunction = 2
	LoaderFeatures                  LayerFunction = 3
)

// Node 扩展链节点
type Node = xchain.Node[StructureType]

// Extension 通用扩展记录，用于拦截层不关心内容的链节点。
type Extension struct {
	Type    StructureType
	PNext   Node
	Payload any
}

// Kind 实现 Node
func (e *Extension) Kind() StructureType { return e.Type }

// Next 实现 Node
func (e *Extension) Next() Node {
	if e == nil {
		return nil
	}
	return e.PNext
}

// ApplicationInfo 应用信息
type ApplicationInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	APIVersion         uint32
}

// InstanceCreateInfo 实例创建参数
type InstanceCreateInfo struct {
	PNext                 Node
	ApplicationInfo       *ApplicationInfo
	EnabledLayerNames     []string
	EnabledExtensionNames []string
}

// Kind 实现 Node
func (c *InstanceCreateInfo) Kind() StructureType { return StructureTypeInstanceCreateInfo }

// Next 实现 Node
func (c *InstanceCreateInfo) Next() Node {
	if c == nil {
		return nil
	}
	return c.PNext
}

// DeviceQueueCreateInfo 设备队列创建参数
type DeviceQueueCreateInfo struct {
	QueueFamilyIndex uint32
	QueuePriorities  []float32
}

// DeviceCreateInfo 设备创建参数
type DeviceCreateInfo struct {
	PNext                 Node
	QueueCreateInfos      []DeviceQueueCreateInfo
	EnabledExtensionNames []string
}

// Kind 实现 Node
func (c *DeviceCreateInfo) Kind() StructureType { return StructureTypeDeviceCreateInfo }

// Next 实现 Node
func (c *DeviceCreateInfo) Next() Node {
	if c == nil {
		return nil
	}
	return c.PNext
}

// ShaderModuleCreateInfo 着色器模块创建参数，Code 为不可变的字节码。
type ShaderModuleCreateInfo struct {
	PNext Node
	Code  []byte
}

// Kind 实现 Node
func (c *ShaderModuleCreateInfo) Kind() StructureType { return StructureTypeShaderModuleCreateInfo }

// Next 实现 Node
func (c *ShaderModuleCreateInfo) Next() Node {
	if c == nil {
		return nil
	}
	return c.PNext
}

// PipelineShaderStage 管线中的一个着色器阶段
type PipelineShaderStage struct {
	Stage      uint32
	Module     ShaderModule
	EntryPoint string
}

// GraphicsPipelineCreateInfo 图形管线创建参数
type GraphicsPipelineCreateInfo struct {
	PNext  Node
	Stages []PipelineShaderStage
}

// Kind 实现 Node
func (c *GraphicsPipelineCreateInfo) Kind() StructureType {
	return StructureTypeGraphicsPipelineCreateInfo
}

// Next 实现 Node
func (c *GraphicsPipelineCreateInfo) Next() Node {
	if c == nil {
		return nil
	}
	return c.PNext
}

// =============================================================================
// loader 链接记录
// =============================================================================

// LayerInstanceLink 实例创建时单层的链接信息，Next 指向更下层。
type LayerInstanceLink struct {
	Next                          *LayerInstanceLink
	NextGetInstanceProcAddr       GetInstanceProcAddrFunc
	NextGetPhysicalDeviceProcAddr GetPhysicalDeviceProcAddrFunc
}

// LayerDeviceLink 设备创建时单层的链接信息，Next 指向更下层。
type LayerDeviceLink struct {
	Next                    *LayerDeviceLink
	NextGetInstanceProcAddr GetInstanceProcAddrFunc
	NextGetDeviceProcAddr   GetDeviceProcAddrFunc
}

// advanceLog 记录哪些层已经推进过某条链接记录
type advanceLog []uuid.UUID

func (l advanceLog) contains(owner uuid.UUID) bool {
	for _, id := range l {
		if id == owner {
			return true
		}
	}
	return false
}

// LayerInstanceCreateInfo loader 注入到实例创建链上的记录。
// Function 为 LayerLinkInfo 时 LayerInfo 有效。
type LayerInstanceCreateInfo struct {
	PNext     Node
	Function  LayerFunction
	LayerInfo *LayerInstanceLink

	advanced advanceLog
}

// Kind 实现 Node
func (c *LayerInstanceCreateInfo) Kind() StructureType {
	return StructureTypeLoaderInstanceCreateInfo
}

// Next 实现 Node
func (c *LayerInstanceCreateInfo) Next() Node {
	if c == nil {
		return nil
	}
	return c.PNext
}

// Advance 取出当前层的链接，并把 LayerInfo 推进到下一层。
//
// 这是对调用方参数的一次性破坏性修改：下一层看到的是缩短后的子链。
// 同一 owner 对同一记录再次调用返回 [ErrAlreadyAdvanced]，记录保持不变。
func (c *LayerInstanceCreateInfo) Advance(owner uuid.UUID) (*LayerInstanceLink, error) {
	if c.advanced.contains(owner) {
		return nil, ErrAlreadyAdvanced
	}
	link := c.LayerInfo
	if link == nil {
		return nil, ErrNoLayerLink
	}
	c.LayerInfo = link.Next
	c.advanced = append(c.advanced, owner)
	return link, nil
}

// AdvancedBy 报告 owner 是否已推进过该记录
func (c *LayerInstanceCreateInfo) AdvancedBy(owner uuid.UUID) bool {
	return c.advanced.contains(owner)
}

// LayerDeviceCreateInfo loader 注入到设备创建链上的记录。
type LayerDeviceCreateInfo struct {
	PNext     Node
	Function  LayerFunction
	LayerInfo *LayerDeviceLink

	advanced advanceLog
}

// Kind 实现 Node
func (c *LayerDeviceCreateInfo) Kind() StructureType {
	return StructureTypeLoaderDeviceCreateInfo
}

// Next 实现 Node
func (c *LayerDeviceCreateInfo) Next() Node {
	if c == nil {
		return nil
	}
	return c.PNext
}

// Advance 取出当前层的链接，并把 LayerInfo 推进到下一层。
// 语义同 [LayerInstanceCreateInfo.Advance]。
func (c *LayerDeviceCreateInfo) Advance(owner uuid.UUID) (*LayerDeviceLink, error) {
	if c.advanced.contains(owner) {
		return nil, ErrAlreadyAdvanced
	}
	link := c.LayerInfo
	if link == nil {
		return nil, ErrNoLayerLink
	}
	c.LayerInfo = link.Next
	c.advanced = append(c.advanced, owner)
	return link, nil
}

// AdvancedBy 报告 owner 是否已推进过该记录
func (c *LayerDeviceCreateInfo) AdvancedBy(owner uuid.UUID) bool {
	return c.advanced.contains(owner)
}

// FindInstanceLink 在实例创建参数的扩展链中查找 Function 为 LayerLinkInfo 的 loader 记录。
// info 为 nil 或链上没有该记录时返回 false，链不会被修改。
func FindInstanceLink(info *InstanceCreateInfo) (*LayerInstanceCreateInfo, bool) {
	return xchain.Find(info.Next(), StructureTypeLoaderInstanceCreateInfo,
		func(c *LayerInstanceCreateInfo) bool {
			return c != nil && c.Function == LayerLinkInfo
		})
}

// FindDeviceLink 在设备创建参数的扩展链中查找 Function 为 LayerLinkInfo 的 loader 记录。
func FindDeviceLink(info *DeviceCreateInfo) (*LayerDeviceCreateInfo, bool) {
	return xchain.Find(info.Next(), StructureTypeLoaderDeviceCreateInfo,
		func(c *LayerDeviceCreateInfo) bool {
			return c != nil && c.Function == LayerLinkInfo
		})
}
