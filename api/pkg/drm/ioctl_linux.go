//go:build linux

package drm

import (
	"fmt"
	"unsafe"

	"github.com/helixml/helix-dmabuf/api/pkg/ioctl"
)

// DRM ioctl numbers. Struct sizes are identical on every 64-bit Linux ABI.
var (
	// DRM_IOCTL_GEM_CLOSE = _IOW('d', 0x09, struct drm_gem_close)
	ioctlGemClose = ioctl.IOW('d', 0x09, unsafe.Sizeof(drmGemClose{}))

	// DRM_IOCTL_PRIME_FD_TO_HANDLE = _IOWR('d', 0x2e, struct drm_prime_handle)
	ioctlPrimeFDToHandle = ioctl.IOWR('d', 0x2e, unsafe.Sizeof(drmPrimeHandle{}))

	// DRM_IOCTL_MODE_MAP_DUMB = _IOWR('d', 0xb3, struct drm_mode_map_dumb)
	ioctlModeMapDumb = ioctl.IOWR('d', 0xb3, unsafe.Sizeof(drmModeMapDumb{}))
)

// drmGemClose corresponds to struct drm_gem_close.
type drmGemClose struct {
	Handle uint32
	Pad    uint32
}

// drmPrimeHandle corresponds to struct drm_prime_handle.
type drmPrimeHandle struct {
	Handle uint32
	Flags  uint32
	FD     int32
}

// drmModeMapDumb corresponds to struct drm_mode_map_dumb.
type drmModeMapDumb struct {
	Handle uint32
	Pad    uint32
	Offset uint64
}

// PrimeFDToHandle imports a dma-buf fd into the DRM device devFD and returns
// the GEM handle it was given there. The handle must be released with
// CloseHandle.
func PrimeFDToHandle(devFD, fd int) (uint32, error) {
	req := drmPrimeHandle{FD: int32(fd)}
	if err := ioctl.Do(devFD, ioctlPrimeFDToHandle, unsafe.Pointer(&req)); err != nil {
		return 0, fmt.Errorf("PRIME_FD_TO_HANDLE(fd=%d): %w", fd, err)
	}
	return req.Handle, nil
}

// MapDumb returns the fake mmap offset for handle on devFD. Only dumb buffers
// are guaranteed to support this; GPU-rendered buffers frequently do not.
func MapDumb(devFD int, handle uint32) (uint64, error) {
	req := drmModeMapDumb{Handle: handle}
	if err := ioctl.Do(devFD, ioctlModeMapDumb, unsafe.Pointer(&req)); err != nil {
		return 0, fmt.Errorf("MODE_MAP_DUMB(%d): %w", handle, err)
	}
	return req.Offset, nil
}

// CloseHandle releases a GEM handle on devFD.
func CloseHandle(devFD int, handle uint32) error {
	req := drmGemClose{Handle: handle}
	if err := ioctl.Do(devFD, ioctlGemClose, unsafe.Pointer(&req)); err != nil {
		return fmt.Errorf("GEM_CLOSE(%d): %w", handle, err)
	}
	return nil
}
