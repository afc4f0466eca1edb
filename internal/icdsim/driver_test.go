package icdsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/vkperf/pkg/layer/xvk"
	"github.com/omeyang/vkperf/pkg/util/xid"
)

func newDriver(t *testing.T, opts ...Option) *Driver {
	t.Helper()
	g, err := xid.NewGenerator(xid.WithMachineID(func() (uint16, error) { return 1, nil }))
	require.NoError(t, err)
	d, err := NewDriver(append([]Option{WithIDGenerator(g)}, opts...)...)
	require.NoError(t, err)
	return d
}

func TestNewDriver_InvalidPhysicalCount(t *testing.T) {
	_, err := NewDriver(WithPhysicalDevices(0))
	assert.ErrorIs(t, err, ErrNoPhysicalDevices)
}

func TestDriver_Lifecycle(t *testing.T) {
	d := newDriver(t, WithPhysicalDevices(3))

	inst, res := d.CreateInstance(&xvk.InstanceCreateInfo{}, nil)
	require.Equal(t, xvk.Success, res)
	assert.NotZero(t, inst)

	pds, res := d.EnumeratePhysicalDevices(inst)
	require.Equal(t, xvk.Success, res)
	require.Len(t, pds, 3)
	owner, ok := d.InstanceOf(pds[0])
	require.True(t, ok)
	assert.Equal(t, inst, owner)

	dev, res := d.CreateDevice(pds[1], &xvk.DeviceCreateInfo{}, nil)
	require.Equal(t, xvk.Success, res)

	mod, res := d.CreateShaderModule(dev, &xvk.ShaderModuleCreateInfo{Code: []byte{1, 2, 3}}, nil)
	require.Equal(t, xvk.Success, res)

	pipes, res := d.CreateGraphicsPipelines(dev, []xvk.GraphicsPipelineCreateInfo{
		{Stages: []xvk.PipelineShaderStage{{Module: mod, EntryPoint: "main"}}},
		{Stages: []xvk.PipelineShaderStage{{Module: mod, EntryPoint: "main"}}},
	}, nil)
	require.Equal(t, xvk.Success, res)
	assert.Len(t, pipes, 2)

	assert.Equal(t, Stats{Instances: 1, PhysicalDevices: 3, Devices: 1, ShaderModules: 1, Pipelines: 2}, d.Live())

	for _, p := range pipes {
		d.DestroyPipeline(dev, p, nil)
	}
	d.DestroyShaderModule(dev, mod, nil)
	d.DestroyDevice(dev, nil)
	d.DestroyInstance(inst, nil)
	assert.Equal(t, Stats{}, d.Live())
	assert.Equal(t, 1, d.Calls(xvk.NameCreateInstance))
	assert.Equal(t, 2, d.Calls(xvk.NameDestroyPipeline))
}

func TestDriver_InvalidArguments(t *testing.T) {
	d := newDriver(t)

	_, res := d.EnumeratePhysicalDevices(42)
	assert.Equal(t, xvk.ErrorInitializationFailed, res)

	_, res = d.CreateDevice(42, nil, nil)
	assert.Equal(t, xvk.ErrorInitializationFailed, res)

	_, res = d.CreateShaderModule(42, &xvk.ShaderModuleCreateInfo{Code: []byte{1}}, nil)
	assert.Equal(t, xvk.ErrorDeviceLost, res)

	inst, _ := d.CreateInstance(nil, nil)
	pds, _ := d.EnumeratePhysicalDevices(inst)
	dev, _ := d.CreateDevice(pds[0], nil, nil)

	_, res = d.CreateShaderModule(dev, &xvk.ShaderModuleCreateInfo{}, nil)
	assert.Equal(t, xvk.ErrorInvalidShader, res)

	_, res = d.CreateGraphicsPipelines(dev, []xvk.GraphicsPipelineCreateInfo{
		{Stages: []xvk.PipelineShaderStage{{Module: 7}}},
	}, nil)
	assert.Equal(t, xvk.ErrorInvalidShader, res)
	assert.Zero(t, d.Live().Pipelines)
}

func TestDriver_Fail(t *testing.T) {
	d := newDriver(t)

	d.Fail(xvk.NameCreateInstance, xvk.ErrorIncompatibleDriver)
	_, res := d.CreateInstance(nil, nil)
	assert.Equal(t, xvk.ErrorIncompatibleDriver, res)
	assert.Zero(t, d.Live().Instances)

	d.Fail(xvk.NameCreateInstance, xvk.Success)
	_, res = d.CreateInstance(nil, nil)
	assert.Equal(t, xvk.Success, res)
	assert.Equal(t, 2, d.Calls(xvk.NameCreateInstance))
}

func TestDriver_ProcAddr(t *testing.T) {
	d := newDriver(t)

	_, ok := xvk.Resolve[xvk.CreateInstanceFunc](d.GetInstanceProcAddr(0, xvk.NameCreateInstance))
	assert.True(t, ok)
	_, ok = xvk.Resolve[xvk.CreateShaderModuleFunc](d.GetInstanceProcAddr(0, xvk.NameCreateShaderModule))
	assert.True(t, ok, "device entries are reachable through the instance resolver")
	_, ok = xvk.Resolve[xvk.CreateInstanceFunc](d.GetDeviceProcAddr(0, xvk.NameCreateInstance))
	assert.False(t, ok)
	assert.Nil(t, d.GetDeviceProcAddr(0, "vkUnknown"))
}
