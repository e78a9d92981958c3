//go:build !cgo || !linux

// Package gles provides GLES stubs when CGO is disabled or not on Linux.
// Every texture creation fails, so the CPU upload path always reports
// failure and the zero-copy import is used instead.
package gles

import "errors"

// ErrCGORequired describes why no texture can be created.
var ErrCGORequired = errors.New("GLES support requires CGO on Linux")

// Context is a stub when CGO is disabled.
type Context struct{}

func New() *Context {
	return &Context{}
}

// GenTexture always returns 0, the GL "no texture" name.
func (c *Context) GenTexture() uint32 { return 0 }

func (c *Context) BindTexture(target, id uint32) {}

func (c *Context) TexParameteri(target, pname uint32, param int32) {}

func (c *Context) PixelStorei(pname uint32, param int32) {}

func (c *Context) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
}

// GetError returns GL_INVALID_OPERATION.
func (c *Context) GetError() uint32 { return 0x0502 }

func (c *Context) DeleteTexture(id uint32) {}
