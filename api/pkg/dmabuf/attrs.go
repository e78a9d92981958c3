package dmabuf

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/helixml/helix-dmabuf/api/pkg/drm"
)

const (
	// MaxPlanes is the largest plane count a dma-buf can describe.
	MaxPlanes = 4
	// InvalidFD marks an unset plane handle or source device.
	InvalidFD = -1
)

// Attrs describes a client dma-buf: geometry, format and per-plane handles.
// The plane fds are owned by whoever holds the Attrs they arrived in.
type Attrs struct {
	Width    uint32
	Height   uint32
	Format   uint32
	Modifier uint64

	Planes  int
	FDs     [MaxPlanes]int
	Offsets [MaxPlanes]uint32
	Strides [MaxPlanes]uint32

	// CrossGPU is set when the buffer was allocated on a device other than
	// the compositor's primary render device.
	CrossGPU bool
	// SourceDevice is an fd for the device the buffer came from, used to
	// translate plane handles when they cannot be mapped directly.
	SourceDevice int
}

// NewAttrs returns Attrs with every handle unset and no modifier.
func NewAttrs() Attrs {
	a := Attrs{
		Modifier:     drm.FormatModInvalid,
		SourceDevice: InvalidFD,
	}
	for i := range a.FDs {
		a.FDs[i] = InvalidFD
	}
	return a
}

// Validate checks that the descriptor is internally consistent.
func (a Attrs) Validate() error {
	if a.Planes < 1 || a.Planes > MaxPlanes {
		return fmt.Errorf("plane count %d out of range 1..%d", a.Planes, MaxPlanes)
	}
	if a.Width == 0 || a.Height == 0 {
		return fmt.Errorf("invalid size %dx%d", a.Width, a.Height)
	}
	for i := 0; i < a.Planes; i++ {
		if a.FDs[i] < 0 {
			return fmt.Errorf("plane %d has no fd", i)
		}
	}
	return nil
}

// HandleCloser closes plane handles.
type HandleCloser interface {
	Close(fd int) error
}

// closeFDs closes every set plane handle and resets it. Planes is zeroed
// afterwards so a second call does nothing.
func (a *Attrs) closeFDs(closer HandleCloser) {
	for i := 0; i < a.Planes && i < MaxPlanes; i++ {
		if a.FDs[i] == InvalidFD {
			continue
		}
		if err := closer.Close(a.FDs[i]); err != nil {
			log.Warn().Err(err).Int("fd", a.FDs[i]).Int("plane", i).Msg("failed to close dma-buf plane fd")
		}
		a.FDs[i] = InvalidFD
	}
	a.Planes = 0
}
