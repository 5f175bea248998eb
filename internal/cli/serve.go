package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/draw-click/internal/annotate"
	"github.com/ironsheep/draw-click/internal/imaging"
	"github.com/ironsheep/draw-click/internal/server"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve draw_click as an MCP tool over stdin/stdout",
		Long: `Run an MCP (JSON-RPC 2.0) server on stdin/stdout exposing the draw_click
and image_dimensions tools. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			// stdout carries the protocol, so every log line goes to stderr
			logger := newLogger(cfg, cmd.ErrOrStderr())
			logger.Printf("draw-click MCP server %s (built %s, commit %s)", Version, BuildTime, GitCommit)

			cache := imaging.NewImageCache()
			a := annotate.New(cache, cfg.Style, cfg.SaveOptions(), annotate.WithLogger(logger))
			srv := server.New(cache, a, server.WithVersion(Version), server.WithLogger(logger))
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
