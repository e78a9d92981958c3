//go:build !linux

package drm

import "os"

func deviceVendor(f *os.File) (Vendor, error) {
	return VendorUnknown, ErrUnsupported
}
