// Package main runs the pinned fixture site on its own, for pointing a
// browser at it by hand or running the e2e suite against a fixed address.
package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thesyncim/pagesuite/internal/config"
	"github.com/thesyncim/pagesuite/pkg/logger"
)

func main() {
	var (
		configPath string
		cfg        *config.Config
	)

	rootCmd := &cobra.Command{
		Use:           "fixture-site",
		Short:         "Serves the pages the e2e suite runs against",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}

			return logger.Setup(cfg.Environment, cfg.LogLevel)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "e2e.yml", "Config File Path")

	rootCmd.AddCommand(serveCommand(func() *config.Config { return cfg }))

	ctx := context.Background()
	err := rootCmd.Execute()
	if err != nil {
		logger.Error(ctx, "fixture-site failed", zap.Error(err))
		log.Println(err)
	}
	logger.Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
