//go:build unix

package xsys

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func openTemp(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), "events.csv"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestLockUnlock(t *testing.T) {
	f := openTemp(t)
	require.NoError(t, LockFile(f))
	require.NoError(t, UnlockFile(f))

	assert.ErrorIs(t, LockFile(nil), ErrNilFile)
	assert.ErrorIs(t, UnlockFile(nil), ErrNilFile)
}

func TestLockFile_Exclusive(t *testing.T) {
	f := openTemp(t)
	other, err := os.OpenFile(f.Name(), os.O_WRONLY, 0)
	require.NoError(t, err)
	defer other.Close()

	require.NoError(t, LockFile(f))
	// 独立打开的描述符拿不到锁
	err = unix.Flock(int(other.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	assert.ErrorIs(t, err, unix.EWOULDBLOCK)

	require.NoError(t, UnlockFile(f))
	require.NoError(t, unix.Flock(int(other.Fd()), unix.LOCK_EX|unix.LOCK_NB))
}

func TestLockFile_RetryOnEINTR(t *testing.T) {
	old := flock
	t.Cleanup(func() { flock = old })

	calls := 0
	flock = func(fd int, how int) error {
		calls++
		if calls == 1 {
			return unix.EINTR
		}
		return nil
	}
	require.NoError(t, LockFile(openTemp(t)))
	assert.Equal(t, 2, calls)

	flock = func(int, int) error { return unix.EBADF }
	err := LockFile(openTemp(t))
	assert.True(t, errors.Is(err, unix.EBADF))
	assert.ErrorContains(t, UnlockFile(openTemp(t)), "LOCK_UN")
}
