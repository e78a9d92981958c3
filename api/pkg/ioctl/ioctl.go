// Package ioctl issues ioctl requests, retrying the ones the kernel
// interrupted before they completed.
package ioctl

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Encoding helpers matching the _IOC family in asm-generic/ioctl.h.
const (
	dirNone  = 0
	dirWrite = 1
	dirRead  = 2

	nrShift   = 0
	typeShift = 8
	sizeShift = 16
	dirShift  = 30
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<dirShift | typ<<typeShift | nr<<nrShift | size<<sizeShift
}

// IO encodes _IO(typ, nr).
func IO(typ, nr uintptr) uintptr { return ioc(dirNone, typ, nr, 0) }

// IOW encodes _IOW(typ, nr, size).
func IOW(typ, nr, size uintptr) uintptr { return ioc(dirWrite, typ, nr, size) }

// IOR encodes _IOR(typ, nr, size).
func IOR(typ, nr, size uintptr) uintptr { return ioc(dirRead, typ, nr, size) }

// IOWR encodes _IOWR(typ, nr, size).
func IOWR(typ, nr, size uintptr) uintptr { return ioc(dirRead|dirWrite, typ, nr, size) }

// Transient reports whether err is one of the errnos an ioctl is retried on.
func Transient(err error) bool {
	return errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN)
}
