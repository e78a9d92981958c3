package dmabuf

import (
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/helixml/helix-dmabuf/api/pkg/config"
	"github.com/helixml/helix-dmabuf/api/pkg/drm"
	"github.com/helixml/helix-dmabuf/api/pkg/syncfile"
)

// Capability is a buffer capability tag.
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityDataPtr
)

// BufferType tags the kind of buffer.
type BufferType int

const (
	BufferTypeShm BufferType = iota
	BufferTypeDMABuf
)

// Options is the process-wide import policy, resolved once at startup.
type Options struct {
	AllowCPUFallback bool
	// Verbose enables detailed import failure logging.
	Verbose bool
}

// OptionsFromConfig derives import policy from configuration.
func OptionsFromConfig(cfg config.DMABuf) Options {
	return Options{
		AllowCPUFallback: cfg.AllowCPUFallback(),
		Verbose:          cfg.Log,
	}
}

// Deps are the collaborators a Buffer imports through.
type Deps struct {
	Context   GPUContext
	Importer  ImageImporter
	Secondary SecondaryDevice
	Fallback  *FallbackBuilder
	Fences    *syncfile.Exporter
	// Closer closes plane fds. Defaults to close(2).
	Closer HandleCloser
}

// Buffer is a client dma-buf imported as a texture. Construction attempts the
// import; a buffer that could not be imported still exists and reports
// Good() == false so callers can reject it.
type Buffer struct {
	id       uint32
	attrs    Attrs
	resource ClientResource

	removeDestroyListener func()
	resourceDestroyed     bool
	handlesClosed         bool
	destroyed             bool

	texture *Texture
	success bool
	opaque  bool

	closer HandleCloser
	fences *syncfile.Exporter
}

// New takes ownership of the fds in attrs and imports the buffer.
func New(id uint32, attrs Attrs, resource ClientResource, opts Options, deps Deps) *Buffer {
	if deps.Context != nil {
		deps.Context.MakeCurrent()
	}

	b := &Buffer{
		id:       id,
		attrs:    attrs,
		resource: resource,
		closer:   deps.Closer,
		fences:   deps.Fences,
	}
	if b.closer == nil {
		b.closer = defaultCloser()
	}

	if resource != nil {
		b.removeDestroyListener = resource.OnDestroy(b.onResourceDestroy)
	}

	b.importBuffer(opts, deps)

	return b
}

func (b *Buffer) importBuffer(opts Options, deps Deps) {
	if b.attrs.CrossGPU && deps.Secondary != nil && deps.Secondary.Available() {
		if opts.AllowCPUFallback && deps.Fallback != nil {
			log.Info().Uint32("buffer", b.id).Msg("cross-GPU buffer detected, using CPU copy fallback")
			if b.importViaFallback(deps.Fallback) {
				return
			}
			log.Warn().Uint32("buffer", b.id).Msg("cross-GPU fallback failed, trying zero-copy import anyway")
		} else {
			log.Info().Uint32("buffer", b.id).Msg("cross-GPU buffer detected, CPU fallback disabled; trying zero-copy import")
		}
	}

	b.importZeroCopy(opts, deps.Importer)
}

func (b *Buffer) importViaFallback(fb *FallbackBuilder) bool {
	tex, err := fb.Build(b.attrs)
	if err != nil {
		log.Error().Err(err).
			Uint32("buffer", b.id).
			Str("format", drm.FormatName(b.attrs.Format)).
			Msg("cross-GPU CPU copy failed")
		return false
	}

	if tex.ID == 0 {
		tex.Release()
		return false
	}

	b.texture = tex
	b.opaque = drm.IsFormatOpaque(b.attrs.Format)
	b.success = true
	return true
}

func (b *Buffer) importZeroCopy(opts Options, importer ImageImporter) {
	if importer == nil {
		log.Error().Uint32("buffer", b.id).Msg("no image importer, cannot import dma-buf")
		return
	}

	img := b.tryImport(importer)
	if img == nil && b.attrs.Modifier != drm.FormatModInvalid {
		if opts.Verbose {
			log.Warn().
				Uint32("buffer", b.id).
				Str("modifier", drm.ModifierName(b.attrs.Modifier)).
				Str("modifier_hex", hex64(b.attrs.Modifier)).
				Msg("dma-buf import failed with modifier, retrying without modifier")
		}
		log.Warn().Uint32("buffer", b.id).Msg("failed to import dma-buf, retrying as implicit")

		b.attrs.Modifier = drm.FormatModInvalid
		img = b.tryImport(importer)
	}

	if img == nil {
		log.Error().
			Uint32("buffer", b.id).
			Str("format", drm.FormatName(b.attrs.Format)).
			Uint32("width", b.attrs.Width).
			Uint32("height", b.attrs.Height).
			Msg("failed to import dma-buf")
		if opts.Verbose {
			log.Error().Uint32("buffer", b.id).Msg("dma-buf import failed even without modifier")
		}
		return
	}

	b.texture = &Texture{
		ID:      img.TextureID(),
		Width:   b.attrs.Width,
		Height:  b.attrs.Height,
		Target:  img.Target(),
		Type:    textureTypeFor(b.attrs.Format),
		release: img.Release,
	}
	b.opaque = drm.IsFormatOpaque(b.attrs.Format)
	b.success = b.texture.ID != 0

	if !b.success {
		log.Error().Uint32("buffer", b.id).Msg("failed to create a dma-buf: texture is null")
	}
}

func (b *Buffer) tryImport(importer ImageImporter) Image {
	img, err := importer.Import(b.attrs)
	if err != nil {
		log.Debug().Err(err).Uint32("buffer", b.id).Str("modifier", drm.ModifierName(b.attrs.Modifier)).Msg("zero-copy import rejected")
		return nil
	}
	return img
}

func (b *Buffer) onResourceDestroy() {
	b.resourceDestroyed = true
	b.closeHandles()
	if b.removeDestroyListener != nil {
		b.removeDestroyListener()
		b.removeDestroyListener = nil
	}
}

func (b *Buffer) closeHandles() {
	if b.handlesClosed {
		return
	}
	b.handlesClosed = true
	b.attrs.closeFDs(b.closer)
}

// Destroy notifies the client that the buffer is released, closes the plane
// fds and frees the texture. Calling it again is a no-op.
func (b *Buffer) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true

	if b.resource != nil && !b.resourceDestroyed {
		b.resource.SendRelease()
	}
	if b.removeDestroyListener != nil {
		b.removeDestroyListener()
		b.removeDestroyListener = nil
	}

	b.closeHandles()

	b.texture.Release()
	b.texture = nil
}

// ExportSyncFile returns a fence signalled when every plane is safe to read,
// or nil when no fence is available. The caller owns the returned File.
func (b *Buffer) ExportSyncFile() *syncfile.File {
	if !b.Good() || b.fences == nil {
		return nil
	}
	planes := min(max(b.attrs.Planes, 0), MaxPlanes)
	return b.fences.ExportMerged(b.attrs.FDs[:planes])
}

func (b *Buffer) ID() uint32 { return b.id }

func (b *Buffer) Caps() Capability { return CapabilityDataPtr }

func (b *Buffer) Type() BufferType { return BufferTypeDMABuf }

// IsSynchronous reports whether the texture contents are complete without
// waiting on a fence.
func (b *Buffer) IsSynchronous() bool {
	return b.texture != nil && b.texture.Synchronous
}

// DMABuf returns a copy of the descriptor.
func (b *Buffer) DMABuf() Attrs { return b.attrs }

// Good reports whether the buffer was imported and can be rendered.
func (b *Buffer) Good() bool { return b.success }

func (b *Buffer) Opaque() bool { return b.opaque }

func (b *Buffer) Texture() *Texture { return b.texture }

func (b *Buffer) Size() (width, height uint32) {
	return b.attrs.Width, b.attrs.Height
}

// Update is a no-op; dma-buf contents are read in place.
func (b *Buffer) Update() {}

// BeginDataPtr is declared by the data-pointer capability but not implemented.
func (b *Buffer) BeginDataPtr() ([]byte, uint32, error) {
	return nil, 0, ErrDataPtrUnsupported
}

func (b *Buffer) EndDataPtr() {}

func hex64(v uint64) string {
	return "0x" + strconv.FormatUint(v, 16)
}
