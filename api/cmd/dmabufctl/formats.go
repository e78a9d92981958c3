package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/helixml/helix-dmabuf/api/pkg/dmabuf"
	"github.com/helixml/helix-dmabuf/api/pkg/drm"
)

var glFormatNames = map[uint32]string{
	dmabuf.GLBGRAExt: "GL_BGRA_EXT",
	dmabuf.GLRGBA:    "GL_RGBA",
	dmabuf.GLRGB:     "GL_RGB",
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the formats the cross-GPU CPU copy path can upload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := newTable(cmd.OutOrStdout(), "Format", "Fourcc", "GL format", "Bpp", "Opaque", "1080p frame")

			var rows [][]string
			for _, f := range dmabuf.FallbackFormats() {
				rows = append(rows, []string{
					drm.FormatName(f.Fourcc),
					fmt.Sprintf("0x%08x", f.Fourcc),
					glFormatNames[f.GLFormat],
					strconv.Itoa(f.BytesPerPixel),
					strconv.FormatBool(drm.IsFormatOpaque(f.Fourcc)),
					humanize.IBytes(uint64(1920 * 1080 * f.BytesPerPixel)),
				})
			}

			return renderRows(table, rows)
		},
	}
}
