package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thesyncim/pagesuite/cmd/fixture-site/server"
	"github.com/thesyncim/pagesuite/internal/config"
	"github.com/thesyncim/pagesuite/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCommand(cfg func() *config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the fixture site and blocks until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c := cfg()
			srvCfg := server.Config{
				Addr:         c.Fixture.Addr,
				ReadTimeout:  c.Fixture.ReadTimeout,
				WriteTimeout: c.Fixture.WriteTimeout,
			}
			if addr != "" {
				srvCfg.Addr = addr
			}

			srv, err := server.NewServer(srvCfg)
			if err != nil {
				return err
			}
			if _, err := srv.Start(); err != nil {
				return err
			}
			logger.Info(ctx, "fixture site listening", zap.String("url", srv.URL()))

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			logger.Info(shutdownCtx, "stopping fixture site...")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address, overrides fixture.addr")

	return cmd
}
