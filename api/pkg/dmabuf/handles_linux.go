//go:build linux

package dmabuf

import "golang.org/x/sys/unix"

type unixCloser struct{}

func (unixCloser) Close(fd int) error {
	return unix.Close(fd)
}

func defaultCloser() HandleCloser {
	return unixCloser{}
}
