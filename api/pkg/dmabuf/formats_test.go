package dmabuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/helix-dmabuf/api/pkg/drm"
)

func TestLookupFallbackFormat(t *testing.T) {
	tests := []struct {
		format   uint32
		glFormat uint32
		bpp      int
	}{
		{drm.FormatARGB8888, GLBGRAExt, 4},
		{drm.FormatXRGB8888, GLBGRAExt, 4},
		{drm.FormatABGR8888, GLRGBA, 4},
		{drm.FormatXBGR8888, GLRGBA, 4},
		{drm.FormatRGB888, GLRGB, 3},
	}

	for _, tt := range tests {
		f, err := LookupFallbackFormat(tt.format)
		require.NoError(t, err, drm.FormatName(tt.format))
		assert.Equal(t, tt.glFormat, f.GLFormat, drm.FormatName(tt.format))
		assert.Equal(t, GLUnsignedByte, f.GLType)
		assert.Equal(t, tt.bpp, f.BytesPerPixel)
	}
}

func TestLookupFallbackFormat_Rejected(t *testing.T) {
	for _, format := range []uint32{drm.FormatBGR888, drm.FormatNV12, drm.FormatRGBA8888, drm.FormatXRGB2101010, 0} {
		_, err := LookupFallbackFormat(format)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, drm.FormatName(format))
	}

	_, err := LookupFallbackFormat(drm.FormatBGR888)
	assert.ErrorContains(t, err, "BGR888")
}

func TestFallbackFormats(t *testing.T) {
	formats := FallbackFormats()
	require.Len(t, formats, 5)
	for i := 1; i < len(formats); i++ {
		assert.Less(t, formats[i-1].Fourcc, formats[i].Fourcc)
	}
}

func TestTextureTypeFor(t *testing.T) {
	assert.Equal(t, TextureTypeRGBX, textureTypeFor(drm.FormatXRGB8888))
	assert.Equal(t, TextureTypeRGBX, textureTypeFor(drm.FormatXBGR8888))
	assert.Equal(t, TextureTypeRGBX, textureTypeFor(drm.FormatRGB888))
	assert.Equal(t, TextureTypeRGBA, textureTypeFor(drm.FormatARGB8888))
	assert.Equal(t, TextureTypeRGBA, textureTypeFor(drm.FormatABGR8888))
}
