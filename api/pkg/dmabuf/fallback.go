package dmabuf

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/helixml/helix-dmabuf/api/pkg/drm"
)

// FallbackBuilder makes textures from buffers the GPU cannot import directly
// by copying their contents through host memory. It is slower than a
// zero-copy import but works between GPUs from different vendors.
type FallbackBuilder struct {
	gl     TextureAPI
	mapper Mapper
	device DeviceMapper
}

// NewFallbackBuilder returns a builder uploading through gl. A nil mapper or
// device falls back to the mmap and DRM ioctl implementations.
func NewFallbackBuilder(gl TextureAPI, mapper Mapper, device DeviceMapper) *FallbackBuilder {
	if mapper == nil {
		mapper = NewMapper()
	}
	if device == nil {
		device = NewDeviceMapper()
	}
	return &FallbackBuilder{gl: gl, mapper: mapper, device: device}
}

// Build uploads the single plane of attrs into a new GL texture. The memory
// mapping only lives for the duration of the call.
func (b *FallbackBuilder) Build(attrs Attrs) (*Texture, error) {
	if attrs.Planes != 1 {
		return nil, fmt.Errorf("%w: got %d planes", ErrMultiPlane, attrs.Planes)
	}

	// Assumes a linear layout.
	size := int(attrs.Strides[0]) * int(attrs.Height)
	if size == 0 {
		return nil, fmt.Errorf("%w: stride %d, height %d", ErrInvalidSize, attrs.Strides[0], attrs.Height)
	}
	if err := checkStride(attrs); err != nil {
		return nil, err
	}

	mapping, err := b.mapPlane(attrs, size)
	if err != nil {
		return nil, err
	}
	defer b.unmap(mapping)

	format, err := LookupFallbackFormat(attrs.Format)
	if err != nil {
		return nil, err
	}

	texID := b.gl.GenTexture()
	if texID == 0 {
		return nil, ErrTextureCreate
	}
	owned := false
	defer func() {
		if !owned {
			b.gl.DeleteTexture(texID)
		}
	}()

	b.upload(texID, attrs, format, mapping.Bytes())
	b.unmap(mapping)

	if glErr := b.gl.GetError(); glErr != GLNoError {
		return nil, fmt.Errorf("%w: GL error 0x%x", ErrUpload, glErr)
	}

	owned = true
	gl := b.gl
	tex := &Texture{
		ID:          texID,
		Width:       attrs.Width,
		Height:      attrs.Height,
		Target:      GLTexture2D,
		Type:        textureTypeFor(attrs.Format),
		Synchronous: true,
		release:     func() { gl.DeleteTexture(texID) },
	}

	log.Info().
		Uint32("texture", texID).
		Uint32("width", attrs.Width).
		Uint32("height", attrs.Height).
		Str("format", drm.FormatName(attrs.Format)).
		Str("size", humanize.IBytes(uint64(size))).
		Msg("created cross-GPU texture via CPU copy")

	return tex, nil
}

// mapPlane maps plane 0 directly, and when the exporter does not allow that,
// through a dumb-buffer mapping on the source device.
func (b *FallbackBuilder) mapPlane(attrs Attrs, size int) (*Mapping, error) {
	mapping, err := b.mapper.Map(attrs.FDs[0], int64(attrs.Offsets[0]), size)
	if err == nil {
		return mapping, nil
	}

	log.Warn().Err(err).Msg("failed to mmap dma-buf fd, trying DRM handle path")

	dev := attrs.SourceDevice
	if dev < 0 {
		return nil, ErrNoSourceDevice
	}

	handle, err := b.device.PrimeFDToHandle(dev, attrs.FDs[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMapFailed, err)
	}
	defer func() {
		if err := b.device.CloseHandle(dev, handle); err != nil {
			log.Debug().Err(err).Uint32("handle", handle).Msg("failed to close DRM handle")
		}
	}()

	// Best effort: only dumb buffers are guaranteed to support this.
	offset, err := b.device.MapDumb(dev, handle)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMapFailed, err)
	}

	mapping, err = b.mapper.Map(dev, int64(offset), size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMapFailed, err)
	}
	return mapping, nil
}

// checkStride rejects strides that would make the upload read rows past the
// end of the mapping or split a pixel. Formats without a fallback entry are
// rejected later, after mapping.
func checkStride(attrs Attrs) error {
	format, err := LookupFallbackFormat(attrs.Format)
	if err != nil {
		return nil
	}
	bpp := uint32(format.BytesPerPixel)
	stride := attrs.Strides[0]
	if stride < attrs.Width*bpp || stride%bpp != 0 {
		return fmt.Errorf("%w: stride %d for %d pixels of %d bytes", ErrInvalidSize, stride, attrs.Width, bpp)
	}
	return nil
}

func (b *FallbackBuilder) upload(texID uint32, attrs Attrs, format FallbackFormat, pixels []byte) {
	b.gl.BindTexture(GLTexture2D, texID)
	defer b.gl.BindTexture(GLTexture2D, 0)

	b.gl.TexParameteri(GLTexture2D, GLTextureMinFilter, int32(GLLinear))
	b.gl.TexParameteri(GLTexture2D, GLTextureMagFilter, int32(GLLinear))
	b.gl.TexParameteri(GLTexture2D, GLTextureWrapS, int32(GLClampToEdge))
	b.gl.TexParameteri(GLTexture2D, GLTextureWrapT, int32(GLClampToEdge))

	// Rows are byte-packed for 3-byte formats.
	b.gl.PixelStorei(GLUnpackAlignment, 1)
	defer b.gl.PixelStorei(GLUnpackAlignment, 4)

	if attrs.Strides[0] != attrs.Width*uint32(format.BytesPerPixel) {
		b.gl.PixelStorei(GLUnpackRowLength, int32(attrs.Strides[0])/int32(format.BytesPerPixel))
		defer b.gl.PixelStorei(GLUnpackRowLength, 0)
	}

	b.gl.TexImage2D(GLTexture2D, 0, int32(GLRGBA), int32(attrs.Width), int32(attrs.Height), format.GLFormat, format.GLType, pixels)
}

func (b *FallbackBuilder) unmap(m *Mapping) {
	if err := m.Unmap(); err != nil {
		log.Warn().Err(err).Msg("failed to unmap dma-buf")
	}
}
