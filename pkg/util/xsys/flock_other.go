//go:build !unix

package xsys

import "os"

// LockFile 在非 Unix 平台上返回 [ErrUnsupportedPlatform]。
func LockFile(f *os.File) error {
	if f == nil {
		return ErrNilFile
	}
	return ErrUnsupportedPlatform
}

// UnlockFile 在非 Unix 平台上返回 [ErrUnsupportedPlatform]。
func UnlockFile(f *os.File) error {
	if f == nil {
		return ErrNilFile
	}
	return ErrUnsupportedPlatform
}
