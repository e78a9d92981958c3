//go:build !linux

package drm

// PrimeFDToHandle is not available outside Linux.
func PrimeFDToHandle(devFD, fd int) (uint32, error) {
	return 0, ErrUnsupported
}

// MapDumb is not available outside Linux.
func MapDumb(devFD int, handle uint32) (uint64, error) {
	return 0, ErrUnsupported
}

// CloseHandle is not available outside Linux.
func CloseHandle(devFD int, handle uint32) error {
	return ErrUnsupported
}
