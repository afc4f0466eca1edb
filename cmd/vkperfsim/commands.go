package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/vkperf/internal/icdsim"
	"github.com/omeyang/vkperf/pkg/config/xconf"
	"github.com/omeyang/vkperf/pkg/layer/xlayer"
	"github.com/omeyang/vkperf/pkg/layer/xshader"
	"github.com/omeyang/vkperf/pkg/lifecycle/xrun"
	"github.com/omeyang/vkperf/pkg/observability/xlog"
	"github.com/omeyang/vkperf/pkg/util/xfile"
)

// exitError 表示需要非零退出码但已完成输出的场景。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// isCLIUsageError 判断是否为 urfave/cli 产生的参数解析错误。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, p := range []string{
		"flag provided but not defined",
		"invalid value",
		"Required flag",
		"No help topic",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

func createCommands() []*cli.Command {
	return []*cli.Command{
		createRunCommand(),
		createHashCommand(),
	}
}

func createRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "执行一轮创建/销毁负载",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "层配置文件（yaml/json）",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "主日志路径，覆盖配置文件；空表示标准错误",
			},
			&cli.StringFlag{
				Name:  "header",
				Usage: "主日志表头，覆盖配置文件",
			},
			&cli.StringFlag{
				Name:  "event-log-file",
				Usage: "共享事件日志路径，环境变量 VK_PERFORMANCE_LAYERS_EVENT_LOG_FILE 优先",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "相对日志路径的基准目录",
			},
			&cli.StringFlag{
				Name:  "diag-level",
				Usage: "诊断日志级别 (debug/info/warn/error)，覆盖配置文件",
			},
			&cli.StringFlag{
				Name:  "diag-format",
				Usage: "诊断日志格式 (text/json)",
				Value: "text",
			},
			&cli.IntFlag{
				Name:  "instances",
				Usage: "实例数",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "devices",
				Usage: "每个实例创建的设备数",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "shaders",
				Usage: "每个设备创建的着色器模块数，两两组成一条管线",
				Value: 8,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "并发的实例数上限",
				Value: 4,
			},
			&cli.IntFlag{
				Name:  "physical-devices",
				Usage: "模拟驱动每个实例的物理设备数",
				Value: icdsim.DefaultPhysicalDevices,
			},
			&cli.StringFlag{
				Name:  "shader-dir",
				Usage: "从目录读取 .spv 文件作为着色器，默认随机生成",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "随机着色器的种子",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "监视配置文件，变更后重新应用 diag_level",
			},
			&cli.DurationFlag{
				Name:  "progress",
				Usage: "每隔该时长向标准错误输出存活对象数，0 表示不输出",
			},
			&cli.BoolFlag{
				Name:  "otel",
				Usage: "通过 OpenTelemetry 统计调用次数并在结束时打印",
			},
		},
		Action: cmdRun,
	}
}

func createHashCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash",
		Usage:     "打印着色器文件的内容哈希",
		ArgsUsage: "<file> [file...]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdHash(cmd.Root().Writer, cmd.Args().Slice())
		},
	}
}

// loadRunSettings 合并配置文件、命令行参数和环境变量。
// 优先级：环境变量（仅事件日志路径）> 命令行 > 配置文件。
func loadRunSettings(cmd *cli.Command) (xlayer.Settings, *xconf.Config, error) {
	settings := xlayer.Settings{Header: defaultHeader}
	var cfg *xconf.Config
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = xconf.New(path); err != nil {
			return xlayer.Settings{}, nil, err
		}
		if settings, err = xlayer.SettingsFromConfig(cfg); err != nil {
			return xlayer.Settings{}, nil, err
		}
		if !cfg.Client().Exists("header") {
			settings.Header = defaultHeader
		}
	}

	if cmd.IsSet("log-file") {
		settings.LogFile = cmd.String("log-file")
	}
	if cmd.IsSet("header") {
		settings.Header = cmd.String("header")
	}
	if cmd.IsSet("event-log-file") {
		settings.EventLogFile = cmd.String("event-log-file")
	}
	if cmd.IsSet("diag-level") {
		settings.DiagLevel = cmd.String("diag-level")
	}
	settings.ApplyEnv()

	if dir := cmd.String("out-dir"); dir != "" {
		var err error
		if settings.LogFile, err = underDir(dir, settings.LogFile); err != nil {
			return xlayer.Settings{}, nil, err
		}
		if settings.EventLogFile, err = underDir(dir, settings.EventLogFile); err != nil {
			return xlayer.Settings{}, nil, err
		}
	}
	if err := settings.Validate(); err != nil {
		return xlayer.Settings{}, nil, &usageError{msg: err.Error()}
	}
	return settings, cfg, nil
}

// underDir 把相对路径放到 dir 下，空路径和绝对路径原样返回。
func underDir(dir, path string) (string, error) {
	if path == "" || filepath.IsAbs(path) {
		return path, nil
	}
	joined, err := xfile.SafeJoin(dir, path)
	if err != nil {
		return "", &usageError{msg: err.Error()}
	}
	return joined, nil
}

func cmdRun(ctx context.Context, cmd *cli.Command) error {
	w := workload{
		Instances: cmd.Int("instances"),
		Devices:   cmd.Int("devices"),
		Shaders:   cmd.Int("shaders"),
		Workers:   cmd.Int("workers"),
	}
	if err := w.validate(); err != nil {
		return err
	}
	settings, cfg, err := loadRunSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Bool("watch") && cfg == nil {
		return &usageError{msg: "--watch 需要 --config"}
	}

	var codes [][]byte
	if dir := cmd.String("shader-dir"); dir != "" {
		if codes, err = loadShaders(dir); err != nil {
			return err
		}
	} else {
		codes = generateShaders(w.Shaders, cmd.Uint64("seed"))
	}

	logger, cleanup, err := xlog.New().
		SetOutput(os.Stderr).
		SetLevelString(settings.DiagLevel).
		SetFormat(cmd.String("diag-format")).
		Build()
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	defer func() { _ = cleanup() }() //nolint:errcheck // 标准错误无需关闭

	opts := []xlayer.Option{xlayer.WithLogger(logger)}
	var tel *telemetry
	if cmd.Bool("otel") {
		if tel, err = newTelemetry(); err != nil {
			return err
		}
		defer func() { _ = tel.shutdown(context.WithoutCancel(ctx)) }() //nolint:errcheck // 进程即将退出
		opts = append(opts, xlayer.WithObserver(tel.observer))
	}

	layer, err := newRecordingLayer(settings, opts...)
	if err != nil {
		return err
	}
	drv, err := icdsim.NewDriver(icdsim.WithPhysicalDevices(cmd.Int("physical-devices")))
	if err != nil {
		return errors.Join(&usageError{msg: err.Error()}, layer.Close())
	}
	loader := icdsim.NewLoader(drv, layer)

	r := runner{
		logger:   logger,
		progress: cmd.Duration("progress"),
		out:      cmd.Root().ErrWriter,
		driver:   drv,
	}
	if cmd.Bool("watch") {
		r.watch = cfg
	}
	sum, runErr := r.run(ctx, func(ctx context.Context) (summary, error) {
		return runWorkload(ctx, loader, codes, w)
	})
	if err := layer.Close(); err != nil {
		logger.Warn(ctx, "close layer logs", xlog.Err(err))
	}

	out := cmd.Root().Writer
	printSummary(out, sum, layer.Events().PrimaryPath())
	if tel != nil {
		if err := tel.report(context.WithoutCancel(ctx), out); err != nil {
			logger.Warn(ctx, "otel report", xlog.Err(err))
		}
	}
	if errors.Is(runErr, xrun.ErrSignal) {
		fmt.Fprintf(cmd.Root().ErrWriter, "已中断: %v\n", runErr)
		return &exitError{code: 130}
	}
	if runErr != nil {
		// 计数已输出，失败原因单独写到错误输出
		fmt.Fprintf(cmd.Root().ErrWriter, "负载失败: %v\n", runErr)
		return &exitError{code: 1}
	}
	return nil
}

// runner 负载之外的辅助任务：信号处理、配置监视和进度输出。
type runner struct {
	logger   xlog.LoggerWithLevel
	watch    *xconf.Config // 非 nil 时监视该配置
	progress time.Duration // > 0 时周期输出存活对象数
	out      io.Writer
	driver   *icdsim.Driver
}

// run 在一个 Group 中运行 work 和辅助任务，work 成功结束后其余任务随之退出。
// 收到信号时返回 [xrun.SignalError]。
func (r runner) run(ctx context.Context, work func(context.Context) (summary, error)) (summary, error) {
	g, _ := xrun.NewGroup(ctx, xrun.WithName("vkperfsim"), xrun.WithLogger(r.logger))
	g.GoSignals()

	if r.watch != nil {
		g.GoWithName("watch", func(ctx context.Context) error {
			return xconf.Watch(ctx, r.watch, 0, func(cfg *xconf.Config, err error) {
				applyDiagLevel(ctx, cfg, err, r.logger)
			})
		})
	}
	if r.progress > 0 {
		g.GoWithName("progress", xrun.Ticker(r.progress, func(context.Context) error {
			printProgress(r.out, r.driver.Live())
			return nil
		}))
	}

	var sum summary
	g.GoWithName("workload", func(ctx context.Context) error {
		var err error
		if sum, err = work(ctx); err != nil {
			return err
		}
		g.Cancel(nil)
		return nil
	})
	err := g.Wait()
	return sum, err
}

// applyDiagLevel 配置重载后重新应用诊断级别；新配置无效时保留当前级别。
func applyDiagLevel(ctx context.Context, cfg *xconf.Config, err error, logger xlog.LoggerWithLevel) {
	if err != nil {
		logger.Warn(ctx, "config reload failed", xlog.Err(err))
		return
	}
	s, err := xlayer.SettingsFromConfig(cfg)
	if err != nil {
		logger.Warn(ctx, "reloaded config rejected", xlog.Err(err))
		return
	}
	if s.DiagLevel == "" {
		return
	}
	level, err := xlog.ParseLevel(s.DiagLevel)
	if err != nil {
		return
	}
	logger.SetLevel(level)
	logger.Info(ctx, "diag level reloaded", xlog.Path(cfg.Path()))
}

func printProgress(w io.Writer, s icdsim.Stats) {
	fmt.Fprintf(w, "live: instances=%d devices=%d shader_modules=%d pipelines=%d\n",
		s.Instances, s.Devices, s.ShaderModules, s.Pipelines)
}

func printSummary(w io.Writer, s summary, primary string) {
	if primary == "" {
		primary = "(stderr)"
	}
	fmt.Fprintf(w, "instances:      %d\n", s.Instances)
	fmt.Fprintf(w, "devices:        %d\n", s.Devices)
	fmt.Fprintf(w, "shader modules: %d\n", s.ShaderModules)
	fmt.Fprintf(w, "pipelines:      %d\n", s.Pipelines)
	fmt.Fprintf(w, "elapsed:        %s\n", s.Elapsed)
	fmt.Fprintf(w, "log:            %s\n", primary)
}

func cmdHash(w io.Writer, files []string) error {
	if len(files) == 0 {
		return &usageError{msg: "缺少着色器文件参数"}
	}
	table, err := xshader.New()
	if err != nil {
		return err
	}
	for _, f := range files {
		code, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		fmt.Fprintf(w, "%s  %s\n", xshader.ShaderHashToString(table.Hash(code)), f)
	}
	return nil
}
