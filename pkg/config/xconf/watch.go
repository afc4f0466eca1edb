package xconf

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 默认防抖间隔
const DefaultDebounce = 100 * time.Millisecond

// WatchCallback 每次重载后调用，err 为重载或监视错误。
type WatchCallback func(cfg *Config, err error)

// Watch 监视 cfg 的配置文件，变更后重载并调用 callback，直到 ctx 结束。
//
// 监视的是文件所在目录，这样编辑器 "写临时文件再 rename" 的保存方式也能被捕获。
// debounce 内的多次变更只触发一次重载，<= 0 时使用 [DefaultDebounce]。
// callback 总在调用 Watch 的 goroutine 上执行。
func Watch(ctx context.Context, cfg *Config, debounce time.Duration, callback WatchCallback) error {
	if cfg == nil || cfg.path == "" {
		return ErrNotReloadable
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("xconf: create watcher: %w", err)
	}
	dir := filepath.Dir(cfg.path)
	if err := w.Add(dir); err != nil {
		return errors.Join(fmt.Errorf("xconf: watch %s: %w", dir, err), w.Close())
	}
	defer w.Close()

	name := filepath.Base(cfg.path)
	// 第一次事件之前不触发
	timer := time.NewTimer(math.MaxInt64)
	defer timer.Stop()

	notify := func(err error) {
		if callback != nil {
			callback(cfg, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name || !isUpdate(ev) {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			notify(cfg.Reload())
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			notify(fmt.Errorf("xconf: watch error: %w", err))
		}
	}
}

func isUpdate(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
