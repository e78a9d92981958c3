//go:build cgo && linux

// Package gles binds the GLES2 texture calls used to upload dma-buf
// contents. All methods must be called with a current GL context.
package gles

/*
#cgo pkg-config: glesv2

#include <GLES2/gl2.h>
*/
import "C"

import "unsafe"

// Context issues GL calls on whatever context is current on the thread.
type Context struct{}

func New() *Context {
	return &Context{}
}

func (c *Context) GenTexture() uint32 {
	var id C.GLuint
	C.glGenTextures(1, &id)
	return uint32(id)
}

func (c *Context) BindTexture(target, id uint32) {
	C.glBindTexture(C.GLenum(target), C.GLuint(id))
}

func (c *Context) TexParameteri(target, pname uint32, param int32) {
	C.glTexParameteri(C.GLenum(target), C.GLenum(pname), C.GLint(param))
}

func (c *Context) PixelStorei(pname uint32, param int32) {
	C.glPixelStorei(C.GLenum(pname), C.GLint(param))
}

// TexImage2D uploads pixels. The slice is expected to point at mmap'd
// memory, which is not managed by the Go runtime.
func (c *Context) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = unsafe.Pointer(&pixels[0])
	}
	C.glTexImage2D(C.GLenum(target), C.GLint(level), C.GLint(internalFormat),
		C.GLsizei(width), C.GLsizei(height), 0, C.GLenum(format), C.GLenum(xtype), ptr)
}

func (c *Context) GetError() uint32 {
	return uint32(C.glGetError())
}

func (c *Context) DeleteTexture(id uint32) {
	tex := C.GLuint(id)
	C.glDeleteTextures(1, &tex)
}
