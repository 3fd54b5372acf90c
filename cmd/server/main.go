package main

import (
	"context"

	"go.uber.org/fx"

	"github.com/andreprog02/saas-sst/internal/config"
	"github.com/andreprog02/saas-sst/internal/container"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/server"
)

func main() {
	app := fx.New(
		container.Module,
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, log *logger.Logger, srv *server.Server) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.WithField("port", cfg.Server.Port).Info("Starting SST compliance service")

					// Start server in background
					go func() {
						if err := srv.Start(context.Background()); err != nil {
							log.WithError(err).Error("Server error")
						}
					}()

					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.Info("Shutting down SST compliance service")
					return srv.Stop(ctx)
				},
			})
		}),
	)

	app.Run()
}
