// vkperfsim 在模拟驱动上加载编译耗时层，跑一轮创建/销毁负载并输出 CSV 日志。
//
// 用法:
//
//	vkperfsim [全局选项] <命令> [命令参数]
//
// 命令:
//
//	run            执行一轮负载，写主日志和事件日志
//	hash <file>    打印着色器文件的内容哈希
//	help           显示帮助信息
//
// run 的日志配置来自 --config 指定的 yaml/json 文件，命令行参数覆盖文件，
// 环境变量 VK_PERFORMANCE_LAYERS_EVENT_LOG_FILE 覆盖事件日志路径。
//
// 退出码:
//
//	0: 成功
//	1: 负载执行失败
//	2: 参数错误
//	130: 被信号中断（第二个信号直接终止进程）
//
// 示例:
//
//	vkperfsim run --log-file compile_time.csv --instances 4 --shaders 16
//	vkperfsim run -c vkperf.yaml --watch --otel --progress 1s
//	vkperfsim hash shaders/triangle.vert.spv
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入）
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:     "vkperfsim",
		Usage:    "编译耗时层负载模拟器",
		Version:  fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Commands: createCommands(),
		// 退出码由 run 统一映射
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
		Description: `vkperfsim 在进程内模拟 loader 和驱动，把一个或多个编译耗时层
插入调用链，按参数创建实例、设备、着色器模块和图形管线，
每条管线在主日志写一行 "[哈希列表]",耗时(ns),距上一条(ns)。`,
	}
}

func run(args []string) int {
	app := createApp()

	if err := app.Run(context.Background(), args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		if isCLIUsageError(err) {
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}
