// Package serve implements the command that runs the HTTP API.
package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tphakala/birdcatalog/internal/api"
	"github.com/tphakala/birdcatalog/internal/app"
	"github.com/tphakala/birdcatalog/internal/logger"
)

// Command creates the serve command.
func Command(getApp func() *app.App) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := getApp()
			log := a.Logger("cmd")

			cat, err := a.LoadCatalog()
			if err != nil {
				log.Error("failed to load catalog", logger.Error(err))
				return err
			}

			cache := a.NewImageCache()
			defer func() { _ = cache.Close() }()

			cfg := api.ConfigFromSettings(a.Settings)
			if listen != "" {
				cfg.Listen = listen
			}

			srv, err := api.New(cfg, cat,
				api.WithLogger(a.Logger("api")),
				api.WithImages(cache),
				api.WithMetrics(a.Metrics()),
				api.WithBuildInfo(a.BuildInfo))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address, overrides webserver.listen")
	return cmd
}
