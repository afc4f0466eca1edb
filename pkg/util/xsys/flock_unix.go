//go:build unix

package xsys

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// 系统调用替换点，仅测试使用；替换时不能 t.Parallel()。
var flock = unix.Flock

// LockFile 对 f 加排他锁，被信号中断时重试。
func LockFile(f *os.File) error {
	if f == nil {
		return ErrNilFile
	}
	for {
		err := flock(int(f.Fd()), unix.LOCK_EX)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return fmt.Errorf("xsys: flock LOCK_EX %s: %w", f.Name(), err)
		}
		return nil
	}
}

// UnlockFile 释放 f 上的锁
func UnlockFile(f *os.File) error {
	if f == nil {
		return ErrNilFile
	}
	if err := flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		return fmt.Errorf("xsys: flock LOCK_UN %s: %w", f.Name(), err)
	}
	return nil
}
