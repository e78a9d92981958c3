// Package syncfile exports dma-buf readiness fences and merges them into a
// single sync_file the renderer can wait on.
package syncfile

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// MergedFenceName is the name given to every fence produced by a merge.
const MergedFenceName = "merged release fence"

// Kernel is the set of kernel operations fence export needs.
type Kernel interface {
	// IsReadable polls fd without blocking and reports whether it is
	// already readable, i.e. all pending writes to the buffer completed.
	IsReadable(fd int) bool
	// ExportSyncFile exports a read fence for the dma-buf fd.
	ExportSyncFile(fd int) (int, error)
	// Merge returns a new fence signalled once both fd1 and fd2 are.
	Merge(name string, fd1, fd2 int) (int, error)
	Close(fd int) error
}

// File is an owned sync_file descriptor. A nil *File means no fence is
// available and the buffer can be treated as ready.
type File struct {
	fd     int
	kernel Kernel
}

func newFile(fd int, kernel Kernel) *File {
	return &File{fd: fd, kernel: kernel}
}

// FD returns the descriptor, or -1 once closed or released.
func (f *File) FD() int {
	if f == nil {
		return -1
	}
	return f.fd
}

func (f *File) Valid() bool {
	return f != nil && f.fd >= 0
}

// Close closes the fence. Calling it again is a no-op.
func (f *File) Close() error {
	if !f.Valid() {
		return nil
	}
	fd := f.fd
	f.fd = -1
	return f.kernel.Close(fd)
}

// Release hands ownership of the descriptor to the caller.
func (f *File) Release() int {
	if !f.Valid() {
		return -1
	}
	fd := f.fd
	f.fd = -1
	return fd
}

// Exporter exports and merges readiness fences.
type Exporter struct {
	kernel           Kernel
	skipReadablePoll func() bool
}

// NewExporter returns an Exporter. skipReadablePoll, when it returns true,
// disables the readable fast path; some hardware makes that poll very slow.
// A nil predicate never skips.
func NewExporter(kernel Kernel, skipReadablePoll func() bool) *Exporter {
	if skipReadablePoll == nil {
		skipReadablePoll = func() bool { return false }
	}
	return &Exporter{kernel: kernel, skipReadablePoll: skipReadablePoll}
}

// Export exports one read fence per valid fd. Fds that are already readable
// and fds the kernel refuses produce no fence.
func (e *Exporter) Export(fds []int) []*File {
	files := make([]*File, 0, len(fds))
	poll := !e.skipReadablePoll()

	for _, fd := range fds {
		if fd < 0 {
			continue
		}

		if poll && e.kernel.IsReadable(fd) {
			continue
		}

		fence, err := e.kernel.ExportSyncFile(fd)
		if err != nil {
			log.Debug().Err(err).Int("fd", fd).Msg("dma-buf sync file export failed")
			continue
		}
		files = append(files, newFile(fence, e.kernel))
	}

	return files
}

// Merge folds files into a single fence and takes ownership of all of them.
// It returns nil when files is empty or when any merge step fails; a fence
// covering only some of the planes is never returned.
func (e *Exporter) Merge(files []*File) *File {
	if len(files) == 0 {
		return nil
	}

	merged := files[0]
	for i, next := range files[1:] {
		fd, err := e.kernel.Merge(MergedFenceName, merged.FD(), next.FD())
		e.closeFile(merged)
		e.closeFile(next)
		if err != nil {
			log.Warn().Err(err).Msg("failed to merge dma-buf sync files")
			for _, rest := range files[i+2:] {
				e.closeFile(rest)
			}
			return nil
		}
		merged = newFile(fd, e.kernel)
	}

	return merged
}

// ExportMerged exports a fence per fd and merges them.
func (e *Exporter) ExportMerged(fds []int) *File {
	return e.Merge(e.Export(fds))
}

func (e *Exporter) closeFile(f *File) {
	if err := f.Close(); err != nil {
		log.Debug().Err(err).Msg("failed to close sync file")
	}
}

// SkipPollForVendors returns a predicate for NewExporter that skips the
// readable fast path when vendor is one of slow (case-insensitive).
func SkipPollForVendors(vendor string, slow []string) func() bool {
	skip := false
	for _, s := range slow {
		if strings.EqualFold(strings.TrimSpace(s), vendor) {
			skip = true
			break
		}
	}
	return func() bool { return skip }
}
