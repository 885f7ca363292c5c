package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vnest-dev/vnest/pkg/server"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo page live",
		Long: `Serve the demo page over HTTP. Clicks in the browser are sent to the
server over a WebSocket and the updated document is pushed back.

Examples:
  vnest serve
  vnest serve --addr=0.0.0.0:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Address()
			}

			doc, err := buildDemo(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(doc, server.Config{Addr: addr, Logger: slog.Default()})
			success("Serving on http://%s", addr)
			info("Metrics at http://%s/metrics", addr)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")

	return cmd
}
