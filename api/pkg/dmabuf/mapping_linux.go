//go:build linux

package dmabuf

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type mmapMapper struct{}

// NewMapper returns the Mapper backed by mmap(2).
func NewMapper() Mapper {
	return mmapMapper{}
}

func (mmapMapper) Map(fd int, offset int64, size int) (*Mapping, error) {
	data, err := unix.Mmap(fd, offset, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap(fd=%d, offset=%d, size=%d): %w", fd, offset, size, err)
	}
	return NewMapping(data, unix.Munmap), nil
}
