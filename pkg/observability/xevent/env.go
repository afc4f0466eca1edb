package xevent

import "os"

// EnvEventLogFile 指定共享事件日志路径的环境变量
const EnvEventLogFile = "VK_PERFORMANCE_LAYERS_EVENT_LOG_FILE"

// EventPathFromEnv 读取 [EnvEventLogFile]，未设置或为空时返回 ""。
func EventPathFromEnv() string {
	return os.Getenv(EnvEventLogFile)
}
