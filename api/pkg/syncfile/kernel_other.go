//go:build !linux

package syncfile

import "errors"

// ErrUnsupported is returned by the kernel on platforms without dma-buf.
var ErrUnsupported = errors.New("syncfile: unsupported platform")

type unsupportedKernel struct{}

// NewKernel returns a Kernel that never produces fences.
func NewKernel() Kernel {
	return unsupportedKernel{}
}

func (unsupportedKernel) IsReadable(fd int) bool { return false }

func (unsupportedKernel) ExportSyncFile(fd int) (int, error) { return -1, ErrUnsupported }

func (unsupportedKernel) Merge(name string, fd1, fd2 int) (int, error) { return -1, ErrUnsupported }

func (unsupportedKernel) Close(fd int) error { return ErrUnsupported }
