package xlayer

import (
	"context"
	"time"

	"github.com/omeyang/vkperf/pkg/layer/xdispatch"
	"github.com/omeyang/vkperf/pkg/layer/xshader"
	"github.com/omeyang/vkperf/pkg/layer/xvk"
	"github.com/omeyang/vkperf/pkg/observability/xlog"
	"github.com/omeyang/vkperf/pkg/observability/xmetrics"
)

// ShaderModuleResult 一次着色器模块创建的结果。
// Hash 只在 Result 成功时有效。
type ShaderModuleResult struct {
	Device xvk.Device
	Result xvk.Result
	Module xvk.ShaderModule
	Hash   uint64
	Start  time.Time
	End    time.Time
}

// Duration 下一层创建调用的耗时
func (r ShaderModuleResult) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// PipelineResult 一次图形管线批量创建的结果。
//
// Hashes[i] 是第 i 个创建参数各阶段着色器的哈希，按阶段顺序排列。
// 引用了未登记模块的阶段及其之后的阶段不出现在列表中。
type PipelineResult struct {
	Device    xvk.Device
	Result    xvk.Result
	Pipelines []xvk.Pipeline
	Hashes    []xshader.HashVector
	Start     time.Time
	End       time.Time
}

// Duration 下一层创建调用的耗时
func (r PipelineResult) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// CreateShaderModule 转发着色器模块创建并计时，成功时计算一次内容哈希并登记。
func (l *LayerData) CreateShaderModule(ctx context.Context, device xvk.Device, info *xvk.ShaderModuleCreateInfo, alloc *xvk.AllocationCallbacks) ShaderModuleResult {
	ctx, end := l.observe(ctx, xvk.NameCreateShaderModule, xmetrics.Uint64("device", device.Handle()))
	out := ShaderModuleResult{Device: device}

	create, ok := xdispatch.NextDeviceProc(l.registry, device,
		func(t *xdispatch.DeviceTable) xvk.CreateShaderModuleFunc { return t.CreateShaderModule })
	if !ok {
		out.Result = l.violated(ctx, xvk.NameCreateShaderModule, ErrUnregistered, xlog.Handle(device))
		end(out.Result)
		l.shaderHook(ctx, out)
		return out
	}

	out.Start = l.clock.Now()
	out.Module, out.Result = create(device, info, alloc)
	out.End = l.clock.Now()

	if out.Result.Succeeded() && out.Module != 0 {
		var code []byte
		if info != nil {
			code = info.Code
		}
		out.Hash = l.shaders.Register(out.Module, code)
	}
	end(out.Result, xmetrics.Duration("duration", out.Duration()))
	l.shaderHook(ctx, out)
	return out
}

func (l *LayerData) shaderHook(ctx context.Context, r ShaderModuleResult) {
	if l.onShader != nil {
		l.onShader(ctx, r)
	}
}

// DestroyShaderModule 先删除哈希再转发
func (l *LayerData) DestroyShaderModule(ctx context.Context, device xvk.Device, module xvk.ShaderModule, alloc *xvk.AllocationCallbacks) {
	ctx, end := l.observe(ctx, xvk.NameDestroyShaderModule, xmetrics.Uint64("handle", module.Handle()))

	l.shaders.Erase(module)
	destroy, ok := xdispatch.NextDeviceProc(l.registry, device,
		func(t *xdispatch.DeviceTable) xvk.DestroyShaderModuleFunc { return t.DestroyShaderModule })
	if !ok {
		l.logger.Debug(ctx, "destroy shader module on unregistered device", xlog.Handle(device))
		end(xvk.Success)
		return
	}
	destroy(device, module, alloc)
	end(xvk.Success)
}

// CreateGraphicsPipelines 转发管线创建并计时，同时收集每条管线的着色器哈希。
// 哈希在转发前收集，转发期间模块被并发销毁不影响结果。
func (l *LayerData) CreateGraphicsPipelines(ctx context.Context, device xvk.Device, infos []xvk.GraphicsPipelineCreateInfo, alloc *xvk.AllocationCallbacks) PipelineResult {
	ctx, end := l.observe(ctx, xvk.NameCreateGraphicsPipelines,
		xmetrics.Uint64("device", device.Handle()), xmetrics.Int64("count", int64(len(infos))))
	out := PipelineResult{Device: device}

	create, ok := xdispatch.NextDeviceProc(l.registry, device,
		func(t *xdispatch.DeviceTable) xvk.CreateGraphicsPipelinesFunc { return t.CreateGraphicsPipelines })
	if !ok {
		out.Result = l.violated(ctx, xvk.NameCreateGraphicsPipelines, ErrUnregistered, xlog.Handle(device))
		end(out.Result)
		l.pipelineHook(ctx, out)
		return out
	}

	out.Hashes = make([]xshader.HashVector, len(infos))
	for i, info := range infos {
		modules := make([]xvk.ShaderModule, len(info.Stages))
		for j, stage := range info.Stages {
			modules[j] = stage.Module
		}
		hashes, complete := l.shaders.Vector(modules...)
		if !complete {
			l.logger.Debug(ctx, "pipeline references unknown shader module", xlog.Count(int64(i)))
		}
		out.Hashes[i] = hashes
	}

	out.Start = l.clock.Now()
	out.Pipelines, out.Result = create(device, infos, alloc)
	out.End = l.clock.Now()

	end(out.Result, xmetrics.Duration("duration", out.Duration()))
	l.pipelineHook(ctx, out)
	return out
}

func (l *LayerData) pipelineHook(ctx context.Context, r PipelineResult) {
	if l.onPipelines != nil {
		l.onPipelines(ctx, r)
	}
}

// DestroyPipeline 转发管线销毁
func (l *LayerData) DestroyPipeline(ctx context.Context, device xvk.Device, pipeline xvk.Pipeline, alloc *xvk.AllocationCallbacks) {
	destroy, ok := xdispatch.NextDeviceProc(l.registry, device,
		func(t *xdispatch.DeviceTable) xvk.DestroyPipelineFunc { return t.DestroyPipeline })
	if !ok {
		l.logger.Debug(ctx, "destroy pipeline on unregistered device", xlog.Handle(device))
		return
	}
	destroy(device, pipeline, alloc)
}
