package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/helixml/helix-dmabuf/api/pkg/syncfile"
)

func newFenceCmd() *cobra.Command {
	var (
		pid      int
		fds      []int
		skipPoll bool
	)

	cmd := &cobra.Command{
		Use:   "fence",
		Short: "Export and merge readiness fences for dma-bufs held by another process",
		Long: `Opens /proc/<pid>/fd/<fd> for every --fd, exports a read fence from each
dma-buf and merges them, the same way the compositor does before sampling a
client buffer.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(fds) == 0 {
				return fmt.Errorf("at least one --fd is required")
			}

			var planes []int
			for _, n := range fds {
				path := fmt.Sprintf("/proc/%d/fd/%d", pid, n)
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", path, err)
				}
				defer f.Close()
				planes = append(planes, int(f.Fd()))
			}

			kernel := syncfile.NewKernel()
			exporter := syncfile.NewExporter(kernel, func() bool { return skipPoll })

			fence := exporter.ExportMerged(planes)
			if fence == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no fence: buffers are idle or do not support sync file export")
				return nil
			}
			defer func() {
				if err := fence.Close(); err != nil {
					log.Warn().Err(err).Msg("failed to close fence")
				}
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "merged fence fd %d, signalled: %v\n", fence.FD(), kernel.IsReadable(fence.FD()))
			return nil
		},
	}

	cmd.Flags().IntVar(&pid, "pid", os.Getpid(), "Process holding the dma-buf fds")
	cmd.Flags().IntSliceVar(&fds, "fd", nil, "dma-buf fd number in the target process (repeatable)")
	cmd.Flags().BoolVar(&skipPoll, "skip-poll", false, "Always export a fence, even for buffers that are already readable")

	return cmd
}
