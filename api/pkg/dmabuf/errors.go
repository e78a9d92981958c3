package dmabuf

import "errors"

var (
	ErrMultiPlane         = errors.New("multi-plane buffers are not supported by the CPU fallback")
	ErrInvalidSize        = errors.New("invalid buffer size")
	ErrUnsupportedFormat  = errors.New("unsupported pixel format")
	ErrNoSourceDevice     = errors.New("no source device available for DRM handle mapping")
	ErrMapFailed          = errors.New("failed to map buffer memory")
	ErrTextureCreate      = errors.New("failed to create texture")
	ErrUpload             = errors.New("texture upload failed")
	ErrDataPtrUnsupported = errors.New("data pointer access is not implemented for dma-buf buffers")
	ErrUnsupported        = errors.New("dmabuf: unsupported platform")
)
