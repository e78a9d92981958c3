package drm

import "fmt"

// fourccCode mirrors the fourcc_code() macro from drm_fourcc.h.
func fourccCode(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// DRM pixel formats. Only the ones the compositor needs to name or classify.
var (
	FormatRGB565      = fourccCode('R', 'G', '1', '6')
	FormatRGB888      = fourccCode('R', 'G', '2', '4')
	FormatBGR888      = fourccCode('B', 'G', '2', '4')
	FormatXRGB8888    = fourccCode('X', 'R', '2', '4')
	FormatXBGR8888    = fourccCode('X', 'B', '2', '4')
	FormatRGBX8888    = fourccCode('R', 'X', '2', '4')
	FormatBGRX8888    = fourccCode('B', 'X', '2', '4')
	FormatARGB8888    = fourccCode('A', 'R', '2', '4')
	FormatABGR8888    = fourccCode('A', 'B', '2', '4')
	FormatRGBA8888    = fourccCode('R', 'A', '2', '4')
	FormatBGRA8888    = fourccCode('B', 'A', '2', '4')
	FormatXRGB2101010 = fourccCode('X', 'R', '3', '0')
	FormatXBGR2101010 = fourccCode('X', 'B', '3', '0')
	FormatARGB2101010 = fourccCode('A', 'R', '3', '0')
	FormatABGR2101010 = fourccCode('A', 'B', '3', '0')
	FormatNV12        = fourccCode('N', 'V', '1', '2')
	FormatYUYV        = fourccCode('Y', 'U', 'Y', 'V')
)

type formatInfo struct {
	name     string
	hasAlpha bool
}

var formats = map[uint32]formatInfo{
	FormatRGB565:      {name: "RGB565"},
	FormatRGB888:      {name: "RGB888"},
	FormatBGR888:      {name: "BGR888"},
	FormatXRGB8888:    {name: "XRGB8888"},
	FormatXBGR8888:    {name: "XBGR8888"},
	FormatRGBX8888:    {name: "RGBX8888"},
	FormatBGRX8888:    {name: "BGRX8888"},
	FormatARGB8888:    {name: "ARGB8888", hasAlpha: true},
	FormatABGR8888:    {name: "ABGR8888", hasAlpha: true},
	FormatRGBA8888:    {name: "RGBA8888", hasAlpha: true},
	FormatBGRA8888:    {name: "BGRA8888", hasAlpha: true},
	FormatXRGB2101010: {name: "XRGB2101010"},
	FormatXBGR2101010: {name: "XBGR2101010"},
	FormatARGB2101010: {name: "ARGB2101010", hasAlpha: true},
	FormatABGR2101010: {name: "ABGR2101010", hasAlpha: true},
	FormatNV12:        {name: "NV12"},
	FormatYUYV:        {name: "YUYV"},
}

// FormatName returns a printable name for a DRM fourcc. Unknown formats are
// rendered as their four characters followed by the raw value.
func FormatName(format uint32) string {
	if info, ok := formats[format]; ok {
		return info.name
	}
	b := []byte{byte(format), byte(format >> 8), byte(format >> 16), byte(format >> 24)}
	for i, c := range b {
		if c < 0x20 || c > 0x7e {
			b[i] = '?'
		}
	}
	return fmt.Sprintf("%s (0x%08x)", b, format)
}

// IsFormatOpaque reports whether the format carries no alpha channel.
// Unknown formats are treated as having alpha so nothing gets blended as
// opaque by accident.
func IsFormatOpaque(format uint32) bool {
	info, ok := formats[format]
	if !ok {
		return false
	}
	return !info.hasAlpha
}

// Format modifiers.
const (
	// FormatModLinear is DRM_FORMAT_MOD_LINEAR.
	FormatModLinear uint64 = 0
	// FormatModInvalid is DRM_FORMAT_MOD_INVALID: no explicit modifier, the
	// driver picks the layout implicitly.
	FormatModInvalid uint64 = 0x00ffffffffffffff
)

var modifierVendors = map[uint64]string{
	0x00: "NONE",
	0x01: "INTEL",
	0x02: "AMD",
	0x03: "NVIDIA",
	0x04: "SAMSUNG",
	0x05: "QCOM",
	0x06: "VIVANTE",
	0x07: "BROADCOM",
	0x08: "ARM",
	0x09: "ALLWINNER",
	0x0a: "AMLOGIC",
}

// ModifierName returns a short printable description of a format modifier.
func ModifierName(modifier uint64) string {
	switch modifier {
	case FormatModInvalid:
		return "INVALID"
	case FormatModLinear:
		return "LINEAR"
	}

	vendor, ok := modifierVendors[modifier>>56]
	if !ok {
		vendor = fmt.Sprintf("VENDOR_0x%02x", modifier>>56)
	}
	return fmt.Sprintf("%s(0x%x)", vendor, modifier&0x00ffffffffffffff)
}
