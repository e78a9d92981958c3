package dmabuf

import (
	"fmt"
	"sort"

	"github.com/helixml/helix-dmabuf/api/pkg/drm"
)

// FallbackFormat describes how the CPU upload path hands a DRM format to GL.
type FallbackFormat struct {
	Fourcc        uint32
	GLFormat      uint32
	GLType        uint32
	BytesPerPixel int
}

var fallbackFormats = map[uint32]FallbackFormat{
	drm.FormatARGB8888: {Fourcc: drm.FormatARGB8888, GLFormat: GLBGRAExt, GLType: GLUnsignedByte, BytesPerPixel: 4},
	drm.FormatXRGB8888: {Fourcc: drm.FormatXRGB8888, GLFormat: GLBGRAExt, GLType: GLUnsignedByte, BytesPerPixel: 4},
	drm.FormatABGR8888: {Fourcc: drm.FormatABGR8888, GLFormat: GLRGBA, GLType: GLUnsignedByte, BytesPerPixel: 4},
	drm.FormatXBGR8888: {Fourcc: drm.FormatXBGR8888, GLFormat: GLRGBA, GLType: GLUnsignedByte, BytesPerPixel: 4},
	drm.FormatRGB888:   {Fourcc: drm.FormatRGB888, GLFormat: GLRGB, GLType: GLUnsignedByte, BytesPerPixel: 3},
}

// LookupFallbackFormat resolves a DRM format for the CPU upload path.
func LookupFallbackFormat(format uint32) (FallbackFormat, error) {
	if format == drm.FormatBGR888 {
		// GLES has no BGR upload format; it would need swizzling.
		return FallbackFormat{}, fmt.Errorf("%w: BGR888 is not supported by GLES", ErrUnsupportedFormat)
	}
	f, ok := fallbackFormats[format]
	if !ok {
		return FallbackFormat{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, drm.FormatName(format))
	}
	return f, nil
}

// FallbackFormats lists the formats the CPU upload path accepts, ordered by fourcc.
func FallbackFormats() []FallbackFormat {
	out := make([]FallbackFormat, 0, len(fallbackFormats))
	for _, f := range fallbackFormats {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fourcc < out[j].Fourcc })
	return out
}

func textureTypeFor(format uint32) TextureType {
	switch format {
	case drm.FormatXRGB8888, drm.FormatXBGR8888, drm.FormatRGB888:
		return TextureTypeRGBX
	default:
		return TextureTypeRGBA
	}
}
