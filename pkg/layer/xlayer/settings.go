package xlayer

import (
	"fmt"

	"github.com/omeyang/vkperf/pkg/config/xconf"
	"github.com/omeyang/vkperf/pkg/observability/xevent"
	"github.com/omeyang/vkperf/pkg/observability/xlog"
	"github.com/omeyang/vkperf/pkg/observability/xrotate"
)

// Settings 层配置
type Settings struct {
	// LogFile 主日志路径，空表示标准错误
	LogFile string `koanf:"log_file"`

	// Header 主日志第一行
	Header string `koanf:"header"`

	// EventLogFile 共享事件日志路径，环境变量优先
	EventLogFile string `koanf:"event_log_file"`

	// LockEventLog 写事件日志时加文件锁，多个进程共享事件日志时使用
	LockEventLog bool `koanf:"lock_event_log"`

	// DiagLevel 诊断日志级别：debug/info/warn/error
	DiagLevel string `koanf:"diag_level"`

	// Rotation 主日志轮转，nil 表示不轮转
	Rotation *xrotate.Config `koanf:"rotation"`
}

// LoadSettings 从 yaml/json 文件读取配置
func LoadSettings(path string) (Settings, error) {
	cfg, err := xconf.New(path)
	if err != nil {
		return Settings{}, err
	}
	return SettingsFromConfig(cfg)
}

// SettingsFromConfig 从已加载的配置读取。
// rotation 段未写出的字段取 [xrotate.DefaultConfig] 的值。
func SettingsFromConfig(cfg *xconf.Config) (Settings, error) {
	rotation := xrotate.DefaultConfig()
	s := Settings{Rotation: &rotation}
	if err := cfg.Unmarshal("", &s); err != nil {
		return Settings{}, err
	}
	if !cfg.Client().Exists("rotation") {
		s.Rotation = nil
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate 校验诊断级别和轮转参数
func (s Settings) Validate() error {
	if s.DiagLevel != "" {
		if _, err := xlog.ParseLevel(s.DiagLevel); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
		}
	}
	if s.Rotation != nil {
		if err := s.Rotation.Validate(); err != nil {
			return fmt.Errorf("%w: rotation: %w", ErrInvalidSettings, err)
		}
	}
	return nil
}

// ApplyEnv 用环境变量覆盖事件日志路径
func (s *Settings) ApplyEnv() {
	if p := xevent.EventPathFromEnv(); p != "" {
		s.EventLogFile = p
	}
}

// EventConfig 转换为事件日志配置
func (s Settings) EventConfig() xevent.Config {
	return xevent.Config{
		PrimaryPath:  s.LogFile,
		Header:       s.Header,
		EventPath:    s.EventLogFile,
		LockEventLog: s.LockEventLog,
		Rotation:     s.Rotation,
	}
}
