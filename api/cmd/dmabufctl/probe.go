package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/helixml/helix-dmabuf/api/pkg/drm"
	"github.com/helixml/helix-dmabuf/api/pkg/syncfile"
)

func newProbeCmd() *cobra.Command {
	var device string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Open a render node and report what the importer would do with it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if device == "" {
				device = cfg.DMABuf.SecondaryRenderNode
			}
			if device == "" {
				return fmt.Errorf("no render node given, pass --device or set DMABUF_SECONDARY_RENDER_NODE")
			}

			node, err := drm.OpenRenderNode(device)
			if err != nil {
				return fmt.Errorf("failed to open render node: %w", err)
			}
			defer node.Close()

			skipPoll := syncfile.SkipPollForVendors(string(node.Vendor()), cfg.DMABuf.SlowPollVendors)()

			table := newTable(cmd.OutOrStdout(), "Property", "Value")

			return renderRows(table, [][]string{
				{"Device", node.Path()},
				{"Available", strconv.FormatBool(node.Available())},
				{"Vendor", string(node.Vendor())},
				{"Skip readable poll", strconv.FormatBool(skipPoll)},
				{"CPU fallback allowed", strconv.FormatBool(cfg.DMABuf.AllowCPUFallback())},
			})
		},
	}

	cmd.Flags().StringVar(&device, "device", "", "Render node to probe (default: DMABUF_SECONDARY_RENDER_NODE)")

	return cmd
}
