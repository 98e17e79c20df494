package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kunnath/pdf-financial-analyzer/internal/api"
	"github.com/kunnath/pdf-financial-analyzer/pkg/config"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the analyzer HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := newLogger()
			service, err := newService(cfg, logger)
			if err != nil {
				return err
			}

			server := api.NewServer(service, api.ServerConfig{
				Addr:               cfg.Server.Addr(),
				RateLimitPerSecond: cfg.Server.RateLimitPerSecond,
				RateLimitBurst:     cfg.Server.RateLimitBurst,
				ShutdownTimeout:    10 * time.Second,
			}, logger)

			return server.Start()
		},
	}
}
