package dmabuf

import (
	"github.com/helixml/helix-dmabuf/api/pkg/drm"
)

// Mapping is a read-only view of buffer memory mapped into the process.
type Mapping struct {
	data  []byte
	unmap func([]byte) error
}

// NewMapping wraps data so that unmap runs exactly once.
func NewMapping(data []byte, unmap func([]byte) error) *Mapping {
	return &Mapping{data: data, unmap: unmap}
}

// Bytes returns the mapped memory. It must not be used after Unmap.
func (m *Mapping) Bytes() []byte {
	if m == nil {
		return nil
	}
	return m.data
}

// Unmap releases the mapping. Calling it again is a no-op.
func (m *Mapping) Unmap() error {
	if m == nil || m.unmap == nil {
		return nil
	}
	unmap, data := m.unmap, m.data
	m.unmap, m.data = nil, nil
	return unmap(data)
}

// Mapper maps a file descriptor read-only and shared.
type Mapper interface {
	Map(fd int, offset int64, size int) (*Mapping, error)
}

// DeviceMapper translates a dma-buf fd into a handle on a DRM device and
// finds the offset at which that device exposes its memory.
type DeviceMapper interface {
	PrimeFDToHandle(devFD, fd int) (uint32, error)
	MapDumb(devFD int, handle uint32) (uint64, error)
	CloseHandle(devFD int, handle uint32) error
}

type drmDeviceMapper struct{}

// NewDeviceMapper returns the DeviceMapper backed by DRM ioctls.
func NewDeviceMapper() DeviceMapper {
	return drmDeviceMapper{}
}

func (drmDeviceMapper) PrimeFDToHandle(devFD, fd int) (uint32, error) {
	return drm.PrimeFDToHandle(devFD, fd)
}

func (drmDeviceMapper) MapDumb(devFD int, handle uint32) (uint64, error) {
	return drm.MapDumb(devFD, handle)
}

func (drmDeviceMapper) CloseHandle(devFD int, handle uint32) error {
	return drm.CloseHandle(devFD, handle)
}
