package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/vkperf/internal/icdsim"
	"github.com/omeyang/vkperf/pkg/layer/xlayer"
	"github.com/omeyang/vkperf/pkg/layer/xshader"
	"github.com/omeyang/vkperf/pkg/layer/xvk"
	"github.com/omeyang/vkperf/pkg/observability/xevent"
	"github.com/omeyang/vkperf/pkg/util/xfile"
)

const (
	eventShaderModule = "create_shader_module"
	eventPipeline     = "create_graphics_pipeline"

	// defaultHeader 主日志表头，与管线行的列对应
	defaultHeader = "Pipeline,Duration(ns),Delta(ns)"

	shaderExt  = ".spv"
	spirvMagic = 0x07230203

	stageVertex   = 0x01
	stageFragment = 0x10
)

// workload 一轮负载的规模
type workload struct {
	Instances int
	Devices   int // 每个实例
	Shaders   int // 每个设备
	Workers   int
}

func (w workload) validate() error {
	switch {
	case w.Instances <= 0:
		return &usageError{msg: fmt.Sprintf("--instances 必须大于 0，当前 %d", w.Instances)}
	case w.Devices <= 0:
		return &usageError{msg: fmt.Sprintf("--devices 必须大于 0，当前 %d", w.Devices)}
	case w.Shaders <= 0:
		return &usageError{msg: fmt.Sprintf("--shaders 必须大于 0，当前 %d", w.Shaders)}
	case w.Workers <= 0:
		return &usageError{msg: fmt.Sprintf("--workers 必须大于 0，当前 %d", w.Workers)}
	}
	return nil
}

// summary 负载完成后的计数
type summary struct {
	Instances     int64
	Devices       int64
	ShaderModules int64
	Pipelines     int64
	Elapsed       time.Duration
}

type counters struct {
	instances atomic.Int64
	devices   atomic.Int64
	modules   atomic.Int64
	pipelines atomic.Int64
}

// newRecordingLayer 创建层并挂上写日志的回调：
// 着色器模块只进事件日志，每条管线在主日志写一行。
func newRecordingLayer(settings xlayer.Settings, opts ...xlayer.Option) (*xlayer.LayerData, error) {
	var layer *xlayer.LayerData
	hooks := []xlayer.Option{
		xlayer.WithShaderModuleHook(func(_ context.Context, r xlayer.ShaderModuleResult) {
			if !r.Result.Succeeded() {
				return
			}
			layer.LogEventOnly(eventShaderModule,
				xevent.Row(xshader.ShaderHashToString(r.Hash), nanos(r.Duration())))
		}),
		xlayer.WithPipelineHook(func(_ context.Context, r xlayer.PipelineResult) {
			if !r.Result.Succeeded() {
				return
			}
			delta := ""
			if d, ok := layer.GetTimeDelta(); ok {
				delta = nanos(d)
			}
			prefix := xevent.CsvCat(nanos(r.Duration()), delta)
			for _, hashes := range r.Hashes {
				layer.Log(eventPipeline, hashes, prefix)
			}
		}),
	}
	l, err := xlayer.New(settings, append(opts, hooks...)...)
	if err != nil {
		return nil, err
	}
	layer = l
	return l, nil
}

func nanos(d time.Duration) string {
	return strconv.FormatInt(d.Nanoseconds(), 10)
}

// runWorkload 并发跑 w.Instances 个实例的完整生命周期，结束时所有对象均已销毁。
// 任一步失败时取消其余实例并返回第一个错误。
func runWorkload(ctx context.Context, loader *icdsim.Loader, codes [][]byte, w workload) (summary, error) {
	if len(codes) == 0 {
		return summary{}, &usageError{msg: "没有可用的着色器"}
	}
	start := time.Now()
	var c counters

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.Workers)
	for i := range w.Instances {
		g.Go(func() error {
			return runInstance(gctx, loader, codes, w, i, &c)
		})
	}
	err := g.Wait()

	return summary{
		Instances:     c.instances.Load(),
		Devices:       c.devices.Load(),
		ShaderModules: c.modules.Load(),
		Pipelines:     c.pipelines.Load(),
		Elapsed:       time.Since(start),
	}, err
}

func runInstance(ctx context.Context, loader *icdsim.Loader, codes [][]byte, w workload, index int, c *counters) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	inst, res := loader.CreateInstance(&xvk.InstanceCreateInfo{
		ApplicationInfo: &xvk.ApplicationInfo{
			ApplicationName: fmt.Sprintf("vkperfsim-%d", index),
			EngineName:      "vkperfsim",
		},
	}, nil)
	if err := res.Err(); err != nil {
		return fmt.Errorf("%s: %w", xvk.NameCreateInstance, err)
	}
	defer loader.DestroyInstance(inst, nil)
	c.instances.Add(1)

	pds, res := loader.EnumeratePhysicalDevices(inst)
	if err := res.Err(); err != nil {
		return fmt.Errorf("%s: %w", xvk.NameEnumeratePhysicalDevices, err)
	}
	if len(pds) == 0 {
		return fmt.Errorf("%s: %w", xvk.NameEnumeratePhysicalDevices, icdsim.ErrNoPhysicalDevices)
	}

	for d := range w.Devices {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := runDevice(loader, pds[d%len(pds)], codes, w.Shaders, index+d, c); err != nil {
			return err
		}
	}
	return nil
}

// runDevice 在一个设备上创建 shaders 个模块，两两组成顶点/片元管线，然后全部销毁。
func runDevice(loader *icdsim.Loader, pd xvk.PhysicalDevice, codes [][]byte, shaders, offset int, c *counters) error {
	dev, res := loader.CreateDevice(pd, &xvk.DeviceCreateInfo{}, nil)
	if err := res.Err(); err != nil {
		return fmt.Errorf("%s: %w", xvk.NameCreateDevice, err)
	}
	defer loader.DestroyDevice(dev, nil)
	c.devices.Add(1)

	modules := make([]xvk.ShaderModule, 0, shaders)
	defer func() {
		for _, m := range modules {
			loader.DestroyShaderModule(dev, m, nil)
		}
	}()
	for i := range shaders {
		code := codes[(offset+i)%len(codes)]
		m, res := loader.CreateShaderModule(dev, &xvk.ShaderModuleCreateInfo{Code: code}, nil)
		if err := res.Err(); err != nil {
			return fmt.Errorf("%s: %w", xvk.NameCreateShaderModule, err)
		}
		modules = append(modules, m)
		c.modules.Add(1)
	}

	pipes, res := loader.CreateGraphicsPipelines(dev, pipelineInfos(modules), nil)
	if err := res.Err(); err != nil {
		return fmt.Errorf("%s: %w", xvk.NameCreateGraphicsPipelines, err)
	}
	for _, p := range pipes {
		loader.DestroyPipeline(dev, p, nil)
	}
	c.pipelines.Add(int64(len(pipes)))
	return nil
}

// pipelineInfos 相邻两个模块组成一条 顶点+片元 管线，奇数时最后一条只有顶点阶段。
func pipelineInfos(modules []xvk.ShaderModule) []xvk.GraphicsPipelineCreateInfo {
	infos := make([]xvk.GraphicsPipelineCreateInfo, 0, (len(modules)+1)/2)
	for i := 0; i < len(modules); i += 2 {
		stages := []xvk.PipelineShaderStage{{Stage: stageVertex, Module: modules[i], EntryPoint: "main"}}
		if i+1 < len(modules) {
			stages = append(stages, xvk.PipelineShaderStage{Stage: stageFragment, Module: modules[i+1], EntryPoint: "main"})
		}
		infos = append(infos, xvk.GraphicsPipelineCreateInfo{Stages: stages})
	}
	return infos
}

// loadShaders 读取 dir 下所有 .spv 文件，按文件名排序。
func loadShaders(dir string) ([][]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read shader dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), shaderExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	codes := make([][]byte, 0, len(names))
	for _, name := range names {
		path, err := xfile.SafeJoin(dir, name)
		if err != nil {
			return nil, err
		}
		code, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read shader: %w", err)
		}
		if len(code) == 0 {
			continue
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil, &usageError{msg: fmt.Sprintf("%s 下没有非空的 %s 文件", dir, shaderExt)}
	}
	return codes, nil
}

// generateShaders 生成 n 份伪 SPIR-V 字节码：魔数开头，长度 64~4096 字节且按 4 对齐。
// 相同的 seed 生成相同的内容。
func generateShaders(n int, seed uint64) [][]byte {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	rng := rand.New(rand.NewChaCha8(key))

	codes := make([][]byte, n)
	for i := range codes {
		words := 16 + rng.IntN(1009)
		code := make([]byte, words*4)
		binary.LittleEndian.PutUint32(code, spirvMagic)
		for off := 4; off < len(code); off += 4 {
			binary.LittleEndian.PutUint32(code[off:], rng.Uint32())
		}
		codes[i] = code
	}
	return codes
}
