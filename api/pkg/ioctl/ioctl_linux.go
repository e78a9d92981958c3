//go:build linux

package ioctl

import (
	"unsafe"

	"github.com/avast/retry-go/v4"
	"golang.org/x/sys/unix"
)

// Do issues request on fd with arg, retrying for as long as the kernel
// reports EINTR or EAGAIN. Any other failure is returned as a unix.Errno.
func Do(fd int, request uintptr, arg unsafe.Pointer) error {
	return retry.Do(
		func() error {
			_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), request, uintptr(arg))
			if errno != 0 {
				return errno
			}
			return nil
		},
		retry.Attempts(0),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.RetryIf(Transient),
		retry.LastErrorOnly(true),
	)
}
