package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved dma-buf configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := newTable(cmd.OutOrStdout(), "Variable", "Value")

			return renderRows(table, [][]string{
				{"DMABUF_ENABLE_CPU_FALLBACK", strconv.FormatBool(cfg.DMABuf.EnableCPUFallback)},
				{"DMABUF_DISABLE_CPU_FALLBACK", strconv.FormatBool(cfg.DMABuf.DisableCPUFallback)},
				{"(cpu fallback allowed)", strconv.FormatBool(cfg.DMABuf.AllowCPUFallback())},
				{"DMABUF_LOG", strconv.FormatBool(cfg.DMABuf.Log)},
				{"DMABUF_SLOW_POLL_VENDORS", strings.Join(cfg.DMABuf.SlowPollVendors, ",")},
				{"DMABUF_SECONDARY_RENDER_NODE", cfg.DMABuf.SecondaryRenderNode},
				{"DMABUF_LOG_LEVEL", cfg.Logging.Level},
			})
		},
	}
}
