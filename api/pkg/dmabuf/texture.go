package dmabuf

// TextureType says how the shader should treat the alpha channel.
type TextureType int

const (
	TextureTypeRGBA TextureType = iota
	// TextureTypeRGBX ignores alpha.
	TextureTypeRGBX
)

func (t TextureType) String() string {
	switch t {
	case TextureTypeRGBA:
		return "rgba"
	case TextureTypeRGBX:
		return "rgbx"
	default:
		return "unknown"
	}
}

// Texture is a GPU texture made from a dma-buf.
type Texture struct {
	ID     uint32
	Width  uint32
	Height uint32
	Target uint32
	Type   TextureType
	// Synchronous is true when the contents were fully uploaded by the CPU.
	// Zero-copy imports are not, and readiness goes through sync files.
	Synchronous bool

	release func()
}

// Release frees the underlying GPU object. Safe to call more than once.
func (t *Texture) Release() {
	if t == nil || t.release == nil {
		return
	}
	release := t.release
	t.release = nil
	release()
}
