package xevent

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/omeyang/vkperf/pkg/observability/xlog"
	"github.com/omeyang/vkperf/pkg/observability/xrotate"
	"github.com/omeyang/vkperf/pkg/util/xfile"
	"github.com/omeyang/vkperf/pkg/util/xtiming"
)

const (
	primaryPerm = 0o644
	eventPerm   = 0o644
)

// Writer 主日志 + 事件日志，并发安全。
type Writer struct {
	primary *sink
	event   *sink // 未启用时为 nil
	clock   xtiming.Clock
	logger  xlog.Logger
}

// New 打开两个 sink 并写入表头。打开失败不会返回错误：
// 主日志回退到标准错误，事件日志被禁用，两种情况都记录警告。
func New(cfg Config, opts ...Option) *Writer {
	o := options{
		clock:  xtiming.SystemClock{},
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = xlog.Default()
	}
	logger := o.logger.With(xlog.Component("xevent"))

	w := &Writer{
		primary: openPrimary(cfg, o, logger),
		clock:   o.clock,
		logger:  logger,
	}
	if cfg.EventPath != "" {
		w.event = openEvent(cfg, logger)
	}

	if err := w.primary.writeLine(cfg.Header); err != nil {
		logger.Warn(context.Background(), "write header failed", xlog.Err(err))
	}
	return w
}

func openPrimary(cfg Config, o options, logger xlog.Logger) *sink {
	stderr := &sink{w: o.stderr}
	if cfg.PrimaryPath == "" {
		return stderr
	}

	if cfg.Rotation != nil {
		r, err := xrotate.NewLumberjack(cfg.PrimaryPath, xrotate.WithConfig(*cfg.Rotation))
		if err != nil {
			logger.Warn(context.Background(), "failed to open primary log, output will be to stderr",
				xlog.Path(cfg.PrimaryPath), xlog.Err(err))
			return stderr
		}
		return &sink{w: r, closer: r, path: r.Filename()}
	}

	f, err := openFile(cfg.PrimaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, primaryPerm)
	if err != nil {
		logger.Warn(context.Background(), "failed to open primary log, output will be to stderr",
			xlog.Path(cfg.PrimaryPath), xlog.Err(err))
		return stderr
	}
	return &sink{w: f, closer: f, path: f.Name()}
}

func openEvent(cfg Config, logger xlog.Logger) *sink {
	f, err := openFile(cfg.EventPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, eventPerm)
	if err != nil {
		logger.Warn(context.Background(), "failed to open event log, events disabled",
			xlog.Path(cfg.EventPath), xlog.Err(err))
		return nil
	}
	s := &sink{w: f, closer: f, path: f.Name()}
	if cfg.LockEventLog {
		s.file = f
	}
	return s
}

// openFile 打开日志文件。路径由操作者给出，只做格式检查，相对路径按当前目录解析。
func openFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	path, err := xfile.CleanPath(name)
	if err != nil {
		return nil, err
	}
	if err := xfile.EnsureDir(path); err != nil {
		return nil, err
	}
	//#nosec G304 -- 路径来自配置
	return os.OpenFile(path, flag, perm)
}

// PrimaryPath 主日志的实际路径，写标准错误时为 ""。
func (w *Writer) PrimaryPath() string {
	return w.primary.path
}

// EventPath 事件日志的实际路径，未启用时为 ""。
func (w *Writer) EventPath() string {
	if w.event == nil {
		return ""
	}
	return w.event.path
}

// EventLogEnabled 事件日志是否启用
func (w *Writer) EventLogEnabled() bool {
	return w.event != nil
}

// Now 当前事件时间
func (w *Writer) Now() time.Time {
	return w.clock.Now()
}

// LogLine 把 line 原样写入主日志；事件日志启用时写入
// "event_type,ts,line"。ts 为零值时取当前时间。
//
// 写入失败只记录警告，不向调用方传播。
func (w *Writer) LogLine(eventType, line string, ts time.Time) {
	if err := w.primary.writeLine(line); err != nil {
		w.warn("primary", err)
	}
	if w.event == nil {
		return
	}
	if ts.IsZero() {
		ts = w.clock.Now()
	}
	if err := w.event.writeLine(CsvCat(Prefix(eventType, ts), line)); err != nil {
		w.warn("event", err)
	}
}

// LogEventOnly 只写事件日志："event_type,now[,extra]"。事件日志未启用时什么都不做。
func (w *Writer) LogEventOnly(eventType, extra string) {
	if w.event == nil {
		return
	}
	line := Prefix(eventType, w.clock.Now())
	if extra != "" {
		line = CsvCat(line, extra)
	}
	if err := w.event.writeLine(line); err != nil {
		w.warn("event", err)
	}
}

func (w *Writer) warn(which string, err error) {
	if errors.Is(err, ErrClosed) {
		return
	}
	w.logger.Warn(context.Background(), "log write failed",
		xlog.Operation(which), xlog.Err(err))
}

// Close 关闭文件 sink，标准错误不会被关闭。之后的写入被丢弃。
func (w *Writer) Close() error {
	var errs []error
	errs = append(errs, w.primary.close())
	if w.event != nil {
		errs = append(errs, w.event.close())
	}
	return errors.Join(errs...)
}
