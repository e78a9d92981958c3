//go:build linux

package drm

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func deviceVendor(f *os.File) (Vendor, error) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return VendorUnknown, fmt.Errorf("fstat: %w", err)
	}
	if st.Mode&unix.S_IFMT != unix.S_IFCHR {
		return VendorUnknown, fmt.Errorf("%s is not a character device", f.Name())
	}
	rdev := uint64(st.Rdev)
	return readVendor(sysfsRoot, unix.Major(rdev), unix.Minor(rdev))
}
