//go:build linux

package syncfile

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/helixml/helix-dmabuf/api/pkg/ioctl"
)

const dmaBufSyncRead = 1 << 0

var (
	// DMA_BUF_IOCTL_EXPORT_SYNC_FILE = _IOWR('b', 2, struct dma_buf_export_sync_file)
	ioctlExportSyncFile = ioctl.IOWR('b', 2, unsafe.Sizeof(dmaBufExportSyncFile{}))

	// SYNC_IOC_MERGE = _IOWR('>', 3, struct sync_merge_data)
	ioctlSyncMerge = ioctl.IOWR('>', 3, unsafe.Sizeof(syncMergeData{}))
)

// dmaBufExportSyncFile corresponds to struct dma_buf_export_sync_file.
type dmaBufExportSyncFile struct {
	Flags uint32
	FD    int32
}

// syncMergeData corresponds to struct sync_merge_data.
type syncMergeData struct {
	Name  [32]byte
	FD2   int32
	Fence int32
	Flags uint32
	Pad   uint32
}

type linuxKernel struct{}

// NewKernel returns the Kernel backed by dma-buf and sync_file ioctls.
func NewKernel() Kernel {
	return linuxKernel{}
}

func (linuxKernel) IsReadable(fd int) bool {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	return err == nil && n == 1 && fds[0].Revents&unix.POLLIN != 0
}

func (linuxKernel) ExportSyncFile(fd int) (int, error) {
	req := dmaBufExportSyncFile{Flags: dmaBufSyncRead, FD: -1}
	if err := ioctl.Do(fd, ioctlExportSyncFile, unsafe.Pointer(&req)); err != nil {
		return -1, fmt.Errorf("DMA_BUF_IOCTL_EXPORT_SYNC_FILE(fd=%d): %w", fd, err)
	}
	return int(req.FD), nil
}

func (linuxKernel) Merge(name string, fd1, fd2 int) (int, error) {
	data := syncMergeData{FD2: int32(fd2), Fence: -1}
	// Leave room for the terminating NUL.
	copy(data.Name[:len(data.Name)-1], name)

	if err := ioctl.Do(fd1, ioctlSyncMerge, unsafe.Pointer(&data)); err != nil {
		return -1, fmt.Errorf("SYNC_IOC_MERGE(%d, %d): %w", fd1, fd2, err)
	}
	return int(data.Fence), nil
}

func (linuxKernel) Close(fd int) error {
	return unix.Close(fd)
}
