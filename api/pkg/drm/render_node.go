package drm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrUnsupported is returned by DRM helpers on platforms without DRM.
var ErrUnsupported = errors.New("drm: unsupported on this platform")

// Vendor identifies the GPU manufacturer behind a render node.
type Vendor string

const (
	VendorIntel   Vendor = "intel"
	VendorAMD     Vendor = "amd"
	VendorNVIDIA  Vendor = "nvidia"
	VendorUnknown Vendor = "unknown"
)

var pciVendors = map[uint64]Vendor{
	0x8086: VendorIntel,
	0x1002: VendorAMD,
	0x10de: VendorNVIDIA,
}

// ParseVendorID maps a PCI vendor id as found in sysfs ("0x8086\n") to a Vendor.
func ParseVendorID(s string) Vendor {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 0, 16)
	if err != nil {
		return VendorUnknown
	}
	if v, ok := pciVendors[id]; ok {
		return v
	}
	return VendorUnknown
}

// sysfsRoot is overridden in tests.
var sysfsRoot = "/sys"

func readVendor(root string, major, minor uint32) (Vendor, error) {
	path := filepath.Join(root, "dev", "char", fmt.Sprintf("%d:%d", major, minor), "device", "vendor")
	data, err := os.ReadFile(path)
	if err != nil {
		return VendorUnknown, err
	}
	return ParseVendorID(string(data)), nil
}

// RenderNode is an opened DRM render node, typically the secondary GPU in a
// multi-GPU system. A nil *RenderNode is valid and reports itself unavailable.
type RenderNode struct {
	path   string
	file   *os.File
	vendor Vendor
}

// OpenRenderNode opens the render node at path (e.g. /dev/dri/renderD129).
func OpenRenderNode(path string) (*RenderNode, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	node := &RenderNode{path: path, file: f, vendor: VendorUnknown}

	vendor, err := deviceVendor(f)
	if err != nil {
		log.Debug().Err(err).Str("device", path).Msg("could not determine render node vendor")
	} else {
		node.vendor = vendor
	}

	return node, nil
}

// Available reports whether the node is open and usable.
func (n *RenderNode) Available() bool {
	return n != nil && n.file != nil
}

// FD returns the node's file descriptor, or -1 when unavailable.
func (n *RenderNode) FD() int {
	if !n.Available() {
		return -1
	}
	return int(n.file.Fd())
}

func (n *RenderNode) Path() string {
	if n == nil {
		return ""
	}
	return n.path
}

func (n *RenderNode) Vendor() Vendor {
	if n == nil {
		return VendorUnknown
	}
	return n.vendor
}

// Close closes the node. It is safe to call more than once.
func (n *RenderNode) Close() error {
	if !n.Available() {
		return nil
	}
	err := n.file.Close()
	n.file = nil
	return err
}
