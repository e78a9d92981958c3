//go:build !linux

package ioctl

import (
	"errors"
	"unsafe"
)

// ErrUnsupported is returned by Do on platforms without the Linux ioctl ABI.
var ErrUnsupported = errors.New("ioctl: unsupported platform")

// Do always fails outside Linux.
func Do(fd int, request uintptr, arg unsafe.Pointer) error {
	return ErrUnsupported
}
