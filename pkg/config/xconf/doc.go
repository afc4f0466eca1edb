// Package xconf 基于 koanf 的配置加载。
//
// 支持 YAML 与 JSON，按扩展名（.yaml/.yml/.json）识别文件格式，
// 或通过 [NewFromBytes] 显式指定。结构体字段使用 `koanf` 标签。
//
//	cfg, err := xconf.New("/etc/vkperf/layer.yaml")
//	var s Settings
//	err = cfg.Unmarshal("", &s)
//
// [Watch] 监视配置文件并在变更时重载，阻塞直到 ctx 结束。
// 它会在调用方的 goroutine 上运行事件循环，只适合命令行工具等宿主程序，
// 拦截层本身不调用它。
package xconf
