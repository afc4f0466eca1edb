package xlayer

import (
	"context"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/omeyang/vkperf/pkg/layer/xshader"
	"github.com/omeyang/vkperf/pkg/layer/xvk"
)

func TestShaderModule_HashLogAndErase(t *testing.T) {
	clock := &stepClock{now: time.Unix(1700000000, 0), step: time.Millisecond}
	var hooked []ShaderModuleResult
	f := newFixture(t, WithClock(clock), WithShaderModuleHook(func(_ context.Context, r ShaderModuleResult) {
		hooked = append(hooked, r)
	}))
	f.createInstance(t)
	f.createDevice(t)
	ctx := context.Background()

	code := []byte("\x03\x02\x23\x07spirv-words")
	info := &xvk.ShaderModuleCreateInfo{Code: code}
	f.next.EXPECT().CreateShaderModule(testDevice, info, gomock.Nil()).Return(xvk.ShaderModule(0x40), xvk.Success)

	r := f.layer.CreateShaderModule(ctx, testDevice, info, nil)
	require.Equal(t, xvk.Success, r.Result)
	assert.Equal(t, xvk.ShaderModule(0x40), r.Module)
	assert.Equal(t, xxhash.Sum64(code), r.Hash)
	assert.Equal(t, time.Millisecond, r.Duration())
	require.Len(t, hooked, 1)
	assert.Equal(t, r, hooked[0])

	got, ok := f.layer.ShaderHash(0x40)
	require.True(t, ok)
	assert.Equal(t, r.Hash, got)

	vec, ok := f.layer.PipelineHashes(0x40)
	require.True(t, ok)
	f.layer.Log("create_graphics_pipeline", vec, "1500")
	lines := readLines(t, f.primary)
	require.Len(t, lines, 2)
	assert.Equal(t, "event,detail", lines[0])
	assert.Equal(t, `"[`+xshader.ShaderHashToString(r.Hash)+`]",1500`, lines[1])

	f.next.EXPECT().DestroyShaderModule(testDevice, xvk.ShaderModule(0x40), gomock.Nil())
	f.layer.DestroyShaderModule(ctx, testDevice, 0x40, nil)
	_, ok = f.layer.ShaderHash(0x40)
	assert.False(t, ok)
}

func TestShaderModule_FailureNotHashed(t *testing.T) {
	f := newFixture(t)
	f.createInstance(t)
	f.createDevice(t)

	info := &xvk.ShaderModuleCreateInfo{Code: []byte{0xde, 0xad}}
	f.next.EXPECT().CreateShaderModule(testDevice, info, gomock.Nil()).Return(xvk.ShaderModule(0), xvk.ErrorInvalidShader)

	r := f.layer.CreateShaderModule(context.Background(), testDevice, info, nil)
	assert.Equal(t, xvk.ErrorInvalidShader, r.Result)
	assert.Zero(t, r.Hash)
	assert.Zero(t, f.layer.Shaders().Len())
}

func TestShaderModule_NullHandleNotHashed(t *testing.T) {
	f := newFixture(t)
	f.createInstance(t)
	f.createDevice(t)

	info := &xvk.ShaderModuleCreateInfo{Code: []byte("spirv")}
	f.next.EXPECT().CreateShaderModule(testDevice, info, gomock.Nil()).Return(xvk.ShaderModule(0), xvk.Success)

	r := f.layer.CreateShaderModule(context.Background(), testDevice, info, nil)
	assert.Equal(t, xvk.Success, r.Result)
	assert.Zero(t, r.Hash)
	assert.Zero(t, f.layer.Shaders().Len())
	_, ok := f.layer.ShaderHash(0)
	assert.False(t, ok)
}

func TestGraphicsPipelines_CollectHashes(t *testing.T) {
	var hooked PipelineResult
	f := newFixture(t, WithPipelineHook(func(_ context.Context, r PipelineResult) { hooked = r }))
	f.createInstance(t)
	f.createDevice(t)
	ctx := context.Background()

	vs, fs := []byte("vertex"), []byte("fragment")
	f.layer.Shaders().Put(0x41, xxhash.Sum64(vs))
	f.layer.Shaders().Put(0x42, xxhash.Sum64(fs))

	infos := []xvk.GraphicsPipelineCreateInfo{
		{Stages: []xvk.PipelineShaderStage{{Module: 0x41}, {Module: 0x42}}},
		{Stages: []xvk.PipelineShaderStage{{Module: 0x42}, {Module: 0x99}}},
	}
	f.next.EXPECT().CreateGraphicsPipelines(testDevice, infos, gomock.Nil()).
		Return([]xvk.Pipeline{0x50, 0x51}, xvk.Success)

	r := f.layer.CreateGraphicsPipelines(ctx, testDevice, infos, nil)
	require.Equal(t, xvk.Success, r.Result)
	assert.Equal(t, []xvk.Pipeline{0x50, 0x51}, r.Pipelines)
	require.Len(t, r.Hashes, 2)
	assert.Equal(t, xshader.HashVector{xxhash.Sum64(vs), xxhash.Sum64(fs)}, r.Hashes[0])
	assert.Equal(t, xshader.HashVector{xxhash.Sum64(fs)}, r.Hashes[1], "stops at the unknown module")
	assert.Equal(t, r, hooked)

	f.next.EXPECT().DestroyPipeline(testDevice, xvk.Pipeline(0x50), gomock.Nil())
	f.layer.DestroyPipeline(ctx, testDevice, 0x50, nil)
}
