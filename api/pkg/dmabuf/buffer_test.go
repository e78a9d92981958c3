package dmabuf

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gomock "go.uber.org/mock/gomock"

	"github.com/helixml/helix-dmabuf/api/pkg/config"
	"github.com/helixml/helix-dmabuf/api/pkg/drm"
	"github.com/helixml/helix-dmabuf/api/pkg/syncfile"
)

const intelXTiled uint64 = 0x0100000000000001

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

// fenceKernel is a syncfile.Kernel that counts every call it receives.
type fenceKernel struct {
	calls    int
	next     int
	exported []int
}

func (k *fenceKernel) IsReadable(fd int) bool {
	k.calls++
	return false
}

func (k *fenceKernel) ExportSyncFile(fd int) (int, error) {
	k.calls++
	k.exported = append(k.exported, fd)
	k.next++
	return 200 + k.next, nil
}

func (k *fenceKernel) Merge(name string, fd1, fd2 int) (int, error) {
	k.calls++
	k.next++
	return 200 + k.next, nil
}

func (k *fenceKernel) Close(fd int) error { return nil }

type BufferSuite struct {
	suite.Suite

	ctrl      *gomock.Controller
	gpu       *MockGPUContext
	importer  *MockImageImporter
	secondary *MockSecondaryDevice
	resource  *MockClientResource

	handles *handleRegistry
	gl      *fakeGL
	mapper  *fakeMapper
	device  *fakeDevice
	kernel  *fenceKernel

	destroyListener func()
	listenerRemoved int
}

func TestBufferSuite(t *testing.T) {
	suite.Run(t, new(BufferSuite))
}

func (s *BufferSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.gpu = NewMockGPUContext(s.ctrl)
	s.importer = NewMockImageImporter(s.ctrl)
	s.secondary = NewMockSecondaryDevice(s.ctrl)
	s.resource = NewMockClientResource(s.ctrl)

	s.handles = newHandleRegistry()
	s.gl = newFakeGL()
	s.mapper = newFakeMapper()
	s.device = newFakeDevice()
	s.kernel = &fenceKernel{}

	s.destroyListener = nil
	s.listenerRemoved = 0
}

func (s *BufferSuite) deps() Deps {
	return Deps{
		Context:   s.gpu,
		Importer:  s.importer,
		Secondary: s.secondary,
		Fallback:  NewFallbackBuilder(s.gl, s.mapper, s.device),
		Fences:    syncfile.NewExporter(s.kernel, nil),
		Closer:    s.handles,
	}
}

func (s *BufferSuite) expectConstruction() {
	s.gpu.EXPECT().MakeCurrent().Times(1)
	s.resource.EXPECT().OnDestroy(gomock.Any()).DoAndReturn(func(fn func()) func() {
		s.destroyListener = fn
		return func() { s.listenerRemoved++ }
	}).Times(1)
}

func (s *BufferSuite) image(id uint32) *MockImage {
	img := NewMockImage(s.ctrl)
	img.EXPECT().TextureID().Return(id).AnyTimes()
	img.EXPECT().Target().Return(GLTexture2D).AnyTimes()
	return img
}

func xrgbAttrs() Attrs {
	a := NewAttrs()
	a.Width, a.Height = 64, 32
	a.Format = drm.FormatXRGB8888
	a.Planes = 1
	a.FDs[0] = 11
	a.Strides[0] = 64 * 4
	return a
}

func (s *BufferSuite) TestZeroCopyImport() {
	s.expectConstruction()
	s.importer.EXPECT().Import(gomock.Any()).Return(s.image(5), nil).Times(1)

	b := New(1, xrgbAttrs(), s.resource, Options{}, s.deps())

	s.True(b.Good())
	s.True(b.Opaque())
	s.False(b.IsSynchronous())
	s.Require().NotNil(b.Texture())
	s.Equal(uint32(5), b.Texture().ID)
	s.Equal(TextureTypeRGBX, b.Texture().Type)
	s.Empty(s.mapper.calls, "no CPU path for same-GPU buffers")
}

func (s *BufferSuite) TestCrossGPUFallback() {
	s.expectConstruction()
	s.secondary.EXPECT().Available().Return(true).AnyTimes()
	s.mapper.fail[11] = true

	a := xrgbAttrs()
	a.Format = drm.FormatARGB8888
	a.CrossGPU = true
	a.SourceDevice = 30

	b := New(2, a, s.resource, Options{AllowCPUFallback: true}, s.deps())

	s.True(b.Good())
	s.False(b.Opaque())
	s.True(b.IsSynchronous())
	s.Equal(TextureTypeRGBA, b.Texture().Type)
	s.Len(s.mapper.calls, 2, "direct map then device map")
	s.Empty(s.device.open)
}

func (s *BufferSuite) TestImportFailsWithAndWithoutModifier() {
	s.expectConstruction()

	var modifiers []uint64
	s.importer.EXPECT().Import(gomock.Any()).DoAndReturn(func(a Attrs) (Image, error) {
		modifiers = append(modifiers, a.Modifier)
		return nil, errors.New("EGL_BAD_MATCH")
	}).Times(2)

	a := xrgbAttrs()
	a.Modifier = intelXTiled

	logs := captureLogs(s.T())
	b := New(3, a, s.resource, Options{Verbose: true}, s.deps())

	s.Contains(logs.String(), `"level":"error"`)
	s.False(b.Good())
	s.Nil(b.Texture())
	s.False(b.IsSynchronous())
	s.Equal([]uint64{intelXTiled, drm.FormatModInvalid}, modifiers)
	s.Equal(drm.FormatModInvalid, b.DMABuf().Modifier)
}

func (s *BufferSuite) TestRetryWithoutModifierSucceeds() {
	s.expectConstruction()

	img := s.image(9)
	calls := 0
	s.importer.EXPECT().Import(gomock.Any()).DoAndReturn(func(a Attrs) (Image, error) {
		calls++
		if a.Modifier != drm.FormatModInvalid {
			return nil, errors.New("modifier rejected")
		}
		return img, nil
	}).AnyTimes()

	a := xrgbAttrs()
	a.Modifier = intelXTiled

	logs := captureLogs(s.T())
	b := New(4, a, s.resource, Options{}, s.deps())

	s.True(b.Good())
	s.Equal(2, calls, "exactly one retry")
	s.Contains(logs.String(), "retrying as implicit")
	s.NotContains(logs.String(), `"level":"error"`, "a recovered import is not an error")
}

func (s *BufferSuite) TestNoRetryWithoutModifier() {
	s.expectConstruction()
	s.importer.EXPECT().Import(gomock.Any()).Return(nil, errors.New("bad")).Times(1)

	b := New(5, xrgbAttrs(), s.resource, Options{}, s.deps())

	s.False(b.Good())
	s.Nil(b.Texture())
}

func (s *BufferSuite) TestZeroTextureIDIsFailure() {
	s.expectConstruction()
	s.importer.EXPECT().Import(gomock.Any()).Return(s.image(0), nil).Times(1)

	b := New(6, xrgbAttrs(), s.resource, Options{}, s.deps())

	s.False(b.Good())
}

func (s *BufferSuite) TestFallbackFailureFallsThroughToZeroCopy() {
	s.expectConstruction()
	s.secondary.EXPECT().Available().Return(true).AnyTimes()
	s.gl.genFails = true
	s.importer.EXPECT().Import(gomock.Any()).Return(s.image(12), nil).Times(1)

	a := xrgbAttrs()
	a.CrossGPU = true

	b := New(7, a, s.resource, Options{AllowCPUFallback: true}, s.deps())

	s.True(b.Good())
	s.False(b.IsSynchronous())
	s.Len(s.mapper.calls, 1)
	s.Equal(0, s.mapper.live)
}

func (s *BufferSuite) TestMultiPlaneCrossGPUUsesZeroCopy() {
	s.expectConstruction()
	s.secondary.EXPECT().Available().Return(true).AnyTimes()
	s.importer.EXPECT().Import(gomock.Any()).Return(s.image(13), nil).Times(1)

	a := xrgbAttrs()
	a.CrossGPU = true
	a.Planes = 2
	a.FDs[1] = 12

	b := New(8, a, s.resource, Options{AllowCPUFallback: true}, s.deps())

	s.True(b.Good())
	s.Empty(s.mapper.calls)
}

func (s *BufferSuite) TestExportSyncFileOnFailedBuffer() {
	s.expectConstruction()
	s.importer.EXPECT().Import(gomock.Any()).Return(nil, errors.New("bad")).Times(1)

	b := New(9, xrgbAttrs(), s.resource, Options{}, s.deps())

	s.Nil(b.ExportSyncFile())
	s.Equal(0, s.kernel.calls)
}

func (s *BufferSuite) TestExportSyncFileMergesPlanes() {
	s.expectConstruction()
	s.importer.EXPECT().Import(gomock.Any()).Return(s.image(5), nil).Times(1)

	a := xrgbAttrs()
	a.Planes = 2
	a.FDs[1] = 12

	b := New(10, a, s.resource, Options{}, s.deps())
	fence := b.ExportSyncFile()

	s.Require().NotNil(fence)
	s.True(fence.Valid())
	// 2 polls, 2 exports, 1 merge.
	s.Equal(5, s.kernel.calls)
}

func (s *BufferSuite) TestExportSyncFileOnlyUsesPlaneFDs() {
	s.expectConstruction()
	s.importer.EXPECT().Import(gomock.Any()).Return(s.image(5), nil).Times(1)

	// A literal leaves the unused fd slots at 0.
	a := Attrs{
		Width:    64,
		Height:   32,
		Format:   drm.FormatXRGB8888,
		Modifier: drm.FormatModInvalid,
		Planes:   1,
		FDs:      [MaxPlanes]int{11},
		Strides:  [MaxPlanes]uint32{64 * 4},
	}

	b := New(15, a, s.resource, Options{}, s.deps())
	fence := b.ExportSyncFile()

	s.Require().NotNil(fence)
	s.Equal([]int{11}, s.kernel.exported)
}

func (s *BufferSuite) TestDestroy() {
	s.expectConstruction()
	img := s.image(5)
	img.EXPECT().Release().Times(1)
	s.importer.EXPECT().Import(gomock.Any()).Return(img, nil)
	s.resource.EXPECT().SendRelease().Times(1)

	a := xrgbAttrs()
	a.Planes = 2
	a.FDs[1] = 12

	b := New(11, a, s.resource, Options{}, s.deps())
	b.Destroy()
	b.Destroy()

	s.Equal(map[int]int{11: 1, 12: 1}, s.handles.closes)
	s.Equal(1, s.listenerRemoved)
	s.Nil(b.Texture())
	s.Equal(0, b.DMABuf().Planes)
	s.Nil(b.ExportSyncFile(), "no handles left to export from")
}

func (s *BufferSuite) TestResourceDestroyThenDestroy() {
	s.expectConstruction()
	img := s.image(5)
	img.EXPECT().Release().Times(1)
	s.importer.EXPECT().Import(gomock.Any()).Return(img, nil)
	// The client resource is gone, so there is nobody to notify.
	s.resource.EXPECT().SendRelease().Times(0)

	b := New(12, xrgbAttrs(), s.resource, Options{}, s.deps())
	s.Require().NotNil(s.destroyListener)

	s.destroyListener()
	s.destroyListener()
	b.Destroy()

	s.Equal(map[int]int{11: 1}, s.handles.closes)
	s.Equal(1, s.listenerRemoved)
}

func (s *BufferSuite) TestNilResource() {
	s.gpu.EXPECT().MakeCurrent().Times(1)
	img := s.image(5)
	img.EXPECT().Release().Times(1)
	s.importer.EXPECT().Import(gomock.Any()).Return(img, nil)

	deps := s.deps()
	b := New(13, xrgbAttrs(), nil, Options{}, deps)
	s.True(b.Good())

	b.Destroy()
	b.Destroy()
	s.Equal(map[int]int{11: 1}, s.handles.closes)
	s.Nil(b.Texture())
}

func (s *BufferSuite) TestDMABufReturnsCopy() {
	s.expectConstruction()
	s.importer.EXPECT().Import(gomock.Any()).Return(s.image(5), nil)

	b := New(14, xrgbAttrs(), s.resource, Options{}, s.deps())

	copied := b.DMABuf()
	copied.FDs[0] = 99
	copied.Planes = 0

	s.Equal(11, b.DMABuf().FDs[0])
	s.Equal(1, b.DMABuf().Planes)
}

func (s *BufferSuite) TestQueries() {
	s.expectConstruction()
	s.importer.EXPECT().Import(gomock.Any()).Return(s.image(5), nil)

	b := New(15, xrgbAttrs(), s.resource, Options{}, s.deps())

	s.Equal(uint32(15), b.ID())
	s.Equal(CapabilityDataPtr, b.Caps())
	s.Equal(BufferTypeDMABuf, b.Type())
	w, h := b.Size()
	s.Equal(uint32(64), w)
	s.Equal(uint32(32), h)

	data, stride, err := b.BeginDataPtr()
	s.Nil(data)
	s.Zero(stride)
	s.ErrorIs(err, ErrDataPtrUnsupported)
}

// TestFallbackPolicy walks every combination of cross-GPU flag, secondary
// device availability and fallback policy. Only the all-true case copies.
func TestFallbackPolicy(t *testing.T) {
	for _, crossGPU := range []bool{false, true} {
		for _, available := range []bool{false, true} {
			for _, allow := range []bool{false, true} {
				name := fmt.Sprintf("cross=%v/secondary=%v/allow=%v", crossGPU, available, allow)
				t.Run(name, func(t *testing.T) {
					ctrl := gomock.NewController(t)

					gpu := NewMockGPUContext(ctrl)
					gpu.EXPECT().MakeCurrent().AnyTimes()

					secondary := NewMockSecondaryDevice(ctrl)
					secondary.EXPECT().Available().Return(available).AnyTimes()

					img := NewMockImage(ctrl)
					img.EXPECT().TextureID().Return(uint32(3)).AnyTimes()
					img.EXPECT().Target().Return(GLTexture2D).AnyTimes()

					importer := NewMockImageImporter(ctrl)
					importer.EXPECT().Import(gomock.Any()).Return(img, nil).AnyTimes()

					mapper := newFakeMapper()
					deps := Deps{
						Context:   gpu,
						Importer:  importer,
						Secondary: secondary,
						Fallback:  NewFallbackBuilder(newFakeGL(), mapper, newFakeDevice()),
						Closer:    newHandleRegistry(),
					}

					a := xrgbAttrs()
					a.CrossGPU = crossGPU

					b := New(1, a, nil, Options{AllowCPUFallback: allow}, deps)
					require.True(t, b.Good())

					want := crossGPU && available && allow
					assert.Equal(t, want, len(mapper.calls) > 0, "fallback attempted")
					assert.Equal(t, want, b.IsSynchronous())
				})
			}
		}
	}
}

func TestOptionsFromConfig(t *testing.T) {
	tests := []struct {
		enable, disable bool
		want            bool
	}{
		{false, false, false},
		{true, false, true},
		{false, true, false},
		{true, true, false},
	}

	for _, tt := range tests {
		opts := OptionsFromConfig(config.DMABuf{EnableCPUFallback: tt.enable, DisableCPUFallback: tt.disable, Log: true})
		assert.Equal(t, tt.want, opts.AllowCPUFallback)
		assert.True(t, opts.Verbose)
	}
}
