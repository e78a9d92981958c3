// Package importer builds dma-buf Buffers for the compositor. It resolves
// the import policy once, owns the secondary render node and wires the GLES
// upload path and the fence exporter into every Buffer it creates.
package importer

import (
	"github.com/rs/zerolog/log"

	"github.com/helixml/helix-dmabuf/api/pkg/config"
	"github.com/helixml/helix-dmabuf/api/pkg/dmabuf"
	"github.com/helixml/helix-dmabuf/api/pkg/drm"
	"github.com/helixml/helix-dmabuf/api/pkg/gles"
	"github.com/helixml/helix-dmabuf/api/pkg/syncfile"
)

// Collaborators are the compositor objects the importer calls into.
type Collaborators struct {
	Context dmabuf.GPUContext
	Images  dmabuf.ImageImporter
	// PrimaryVendor is the vendor of the compositor's rendering GPU.
	PrimaryVendor drm.Vendor

	// Optional overrides, defaulting to GLES, mmap and the dma-buf ioctls.
	TextureAPI  dmabuf.TextureAPI
	FenceKernel syncfile.Kernel
	Closer      dmabuf.HandleCloser
}

type Importer struct {
	opts      dmabuf.Options
	deps      dmabuf.Deps
	secondary *drm.RenderNode
}

// New creates an Importer. A secondary render node that cannot be opened is
// logged and treated as unavailable.
func New(cfg config.DMABuf, c Collaborators) *Importer {
	var secondary *drm.RenderNode
	if cfg.SecondaryRenderNode != "" {
		node, err := drm.OpenRenderNode(cfg.SecondaryRenderNode)
		if err != nil {
			log.Warn().Err(err).Str("device", cfg.SecondaryRenderNode).Msg("secondary render node unavailable, cross-GPU CPU fallback disabled")
		} else {
			secondary = node
			log.Info().
				Str("device", node.Path()).
				Str("vendor", string(node.Vendor())).
				Msg("opened secondary render node")
		}
	}

	textureAPI := c.TextureAPI
	if textureAPI == nil {
		textureAPI = gles.New()
	}
	kernel := c.FenceKernel
	if kernel == nil {
		kernel = syncfile.NewKernel()
	}

	opts := dmabuf.OptionsFromConfig(cfg)
	log.Debug().
		Bool("cpu_fallback", opts.AllowCPUFallback).
		Bool("verbose", opts.Verbose).
		Str("primary_vendor", string(c.PrimaryVendor)).
		Msg("dma-buf import policy")

	return &Importer{
		opts:      opts,
		secondary: secondary,
		deps: dmabuf.Deps{
			Context:   c.Context,
			Importer:  c.Images,
			Secondary: secondary,
			Fallback:  dmabuf.NewFallbackBuilder(textureAPI, nil, nil),
			Fences:    syncfile.NewExporter(kernel, syncfile.SkipPollForVendors(string(c.PrimaryVendor), cfg.SlowPollVendors)),
			Closer:    c.Closer,
		},
	}
}

// Import takes ownership of attrs' fds and imports the buffer. The result
// must be checked with Good().
func (i *Importer) Import(id uint32, attrs dmabuf.Attrs, resource dmabuf.ClientResource) *dmabuf.Buffer {
	if i.secondary.Available() && attrs.CrossGPU && attrs.SourceDevice == dmabuf.InvalidFD {
		attrs.SourceDevice = i.secondary.FD()
	}
	return dmabuf.New(id, attrs, resource, i.opts, i.deps)
}

func (i *Importer) Options() dmabuf.Options {
	return i.opts
}

// Secondary returns the secondary render node, nil when none is open.
func (i *Importer) Secondary() *drm.RenderNode {
	return i.secondary
}

// Close releases the secondary render node. Buffers created by the
// importer must be destroyed first.
func (i *Importer) Close() error {
	return i.secondary.Close()
}
