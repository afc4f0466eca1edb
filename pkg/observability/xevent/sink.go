package xevent

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/omeyang/vkperf/pkg/util/xsys"
)

// sink 一个输出目标，单行写入在锁内一次完成。
type sink struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer // 标准错误时为 nil
	file   *os.File  // 需要 flock 时非 nil
	path   string
	closed bool
	buf    []byte
}

// writeLine 写出 line 和换行符
func (s *sink) writeLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.buf = append(s.buf[:0], line...)
	s.buf = append(s.buf, '\n')

	if s.file != nil {
		if err := xsys.LockFile(s.file); err != nil {
			return err
		}
		_, err := s.w.Write(s.buf)
		return errors.Join(err, xsys.UnlockFile(s.file))
	}
	_, err := s.w.Write(s.buf)
	return err
}

func (s *sink) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
