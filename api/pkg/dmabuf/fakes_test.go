package dmabuf

import (
	"errors"
	"fmt"
)

// handleRegistry is a fake HandleCloser that counts closes per fd.
type handleRegistry struct {
	closes map[int]int
}

func newHandleRegistry() *handleRegistry {
	return &handleRegistry{closes: map[int]int{}}
}

func (r *handleRegistry) Close(fd int) error {
	if fd < 0 {
		return fmt.Errorf("close of unset fd %d", fd)
	}
	r.closes[fd]++
	return nil
}

// fakeGL records the GL calls made by the CPU upload path.
type fakeGL struct {
	nextID   uint32
	genFails bool
	err      uint32

	bound      []uint32
	rowLengths []int32
	alignments []int32
	params     map[uint32]int32
	uploads    []fakeUpload
	deleted    []uint32
}

type fakeUpload struct {
	width, height  int32
	internalFormat int32
	format, xtype  uint32
	pixels         int
	rowLength      int32
	alignment      int32
}

func newFakeGL() *fakeGL {
	return &fakeGL{nextID: 7, params: map[uint32]int32{}}
}

func (g *fakeGL) GenTexture() uint32 {
	if g.genFails {
		return 0
	}
	id := g.nextID
	g.nextID++
	return id
}

func (g *fakeGL) BindTexture(target, id uint32) { g.bound = append(g.bound, id) }

func (g *fakeGL) TexParameteri(target, pname uint32, param int32) { g.params[pname] = param }

func (g *fakeGL) PixelStorei(pname uint32, param int32) {
	switch pname {
	case GLUnpackRowLength:
		g.rowLengths = append(g.rowLengths, param)
	case GLUnpackAlignment:
		g.alignments = append(g.alignments, param)
	}
}

func (g *fakeGL) currentAlignment() int32 {
	if len(g.alignments) == 0 {
		return 4
	}
	return g.alignments[len(g.alignments)-1]
}

func (g *fakeGL) currentRowLength() int32 {
	if len(g.rowLengths) == 0 {
		return 0
	}
	return g.rowLengths[len(g.rowLengths)-1]
}

func (g *fakeGL) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	g.uploads = append(g.uploads, fakeUpload{
		width:          width,
		height:         height,
		internalFormat: internalFormat,
		format:         format,
		xtype:          xtype,
		pixels:         len(pixels),
		rowLength:      g.currentRowLength(),
		alignment:      g.currentAlignment(),
	})
}

func (g *fakeGL) GetError() uint32 { return g.err }

func (g *fakeGL) DeleteTexture(id uint32) { g.deleted = append(g.deleted, id) }

type mapCall struct {
	fd     int
	offset int64
	size   int
}

// fakeMapper maps from in-memory buffers and counts live mappings.
type fakeMapper struct {
	fail  map[int]bool
	calls []mapCall
	live  int
}

func newFakeMapper() *fakeMapper {
	return &fakeMapper{fail: map[int]bool{}}
}

func (m *fakeMapper) Map(fd int, offset int64, size int) (*Mapping, error) {
	m.calls = append(m.calls, mapCall{fd: fd, offset: offset, size: size})
	if m.fail[fd] {
		return nil, errors.New("EACCES")
	}
	m.live++
	return NewMapping(make([]byte, size), func([]byte) error {
		m.live--
		return nil
	}), nil
}

// fakeDevice is a DeviceMapper tracking open GEM handles.
type fakeDevice struct {
	primeErr error
	dumbErr  error
	offset   uint64

	open   map[uint32]bool
	handle uint32
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{open: map[uint32]bool{}, handle: 40, offset: 0x100000}
}

func (d *fakeDevice) PrimeFDToHandle(devFD, fd int) (uint32, error) {
	if d.primeErr != nil {
		return 0, d.primeErr
	}
	d.handle++
	d.open[d.handle] = true
	return d.handle, nil
}

func (d *fakeDevice) MapDumb(devFD int, handle uint32) (uint64, error) {
	if d.dumbErr != nil {
		return 0, d.dumbErr
	}
	return d.offset, nil
}

func (d *fakeDevice) CloseHandle(devFD int, handle uint32) error {
	if !d.open[handle] {
		return errors.New("unknown handle")
	}
	delete(d.open, handle)
	return nil
}
