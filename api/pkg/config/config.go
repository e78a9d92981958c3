package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DMABuf  DMABuf
	Logging Logging
}

// LoadConfig resolves configuration from the environment. It is meant to be
// called once at startup; the result is passed by value from there on.
func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DMABuf controls how client dma-bufs are imported
type DMABuf struct {
	EnableCPUFallback  bool `envconfig:"DMABUF_ENABLE_CPU_FALLBACK" default:"false" description:"Copy cross-GPU buffers through host memory when a secondary render node is available."`
	DisableCPUFallback bool `envconfig:"DMABUF_DISABLE_CPU_FALLBACK" default:"false" description:"Never use the CPU copy path. Wins over DMABUF_ENABLE_CPU_FALLBACK."`
	Log                bool `envconfig:"DMABUF_LOG" default:"false" description:"Log detailed dma-buf import failures."`

	// Vendors whose dma-buf readability poll is pathologically slow, so the
	// poll is skipped and a fence is always exported.
	// See https://gitlab.freedesktop.org/drm/intel/-/issues/9415
	SlowPollVendors []string `envconfig:"DMABUF_SLOW_POLL_VENDORS" default:"intel"`

	SecondaryRenderNode string `envconfig:"DMABUF_SECONDARY_RENDER_NODE" description:"Render node of the secondary GPU, e.g. /dev/dri/renderD129"`
}

// AllowCPUFallback reports whether the CPU copy path may be used.
func (c DMABuf) AllowCPUFallback() bool {
	return c.EnableCPUFallback && !c.DisableCPUFallback
}

type Logging struct {
	Level string `envconfig:"DMABUF_LOG_LEVEL" default:"info" description:"One of trace, debug, info, warn, error."`
}
