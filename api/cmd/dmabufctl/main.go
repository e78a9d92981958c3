// dmabufctl inspects the dma-buf import configuration of this machine and
// exercises fence export on live buffers.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/helixml/helix-dmabuf/api/pkg/config"
)

var cfg config.Config

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("Failed to execute command")
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dmabufctl",
		Short: "Inspect dma-buf import settings and readiness fences",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.LoadCliConfig()
			if err != nil {
				return err
			}

			level, err := zerolog.ParseLevel(cfg.Logging.Level)
			if err != nil {
				level = zerolog.InfoLevel
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:     os.Stderr,
				NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
			})

			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newFormatsCmd())
	rootCmd.AddCommand(newProbeCmd())
	rootCmd.AddCommand(newFenceCmd())

	return rootCmd
}
