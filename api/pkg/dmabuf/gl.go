package dmabuf

// GL enums used by the CPU upload path.
const (
	GLNoError         uint32 = 0
	GLTexture2D       uint32 = 0x0DE1
	GLUnpackRowLength uint32 = 0x0CF2
	GLUnpackAlignment uint32 = 0x0CF5
	GLUnsignedByte    uint32 = 0x1401
	GLRGB             uint32 = 0x1907
	GLRGBA            uint32 = 0x1908
	GLBGRAExt         uint32 = 0x80E1
	GLLinear          uint32 = 0x2601
	GLClampToEdge     uint32 = 0x812F

	GLTextureMagFilter uint32 = 0x2800
	GLTextureMinFilter uint32 = 0x2801
	GLTextureWrapS     uint32 = 0x2802
	GLTextureWrapT     uint32 = 0x2803
)

// TextureAPI is the slice of GLES the CPU upload path calls. The GL context
// must be current on the calling thread.
type TextureAPI interface {
	GenTexture() uint32
	BindTexture(target, id uint32)
	TexParameteri(target, pname uint32, param int32)
	PixelStorei(pname uint32, param int32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte)
	GetError() uint32
	DeleteTexture(id uint32)
}
