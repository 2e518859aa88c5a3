package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pairpad/pairpad-server/internal/app"
	"github.com/pairpad/pairpad-server/internal/config"
	"github.com/pairpad/pairpad-server/internal/log"
)

func main() {
	var (
		configPath string
		addr       string
		dbPath     string
	)

	root := &cobra.Command{
		Use:           "pairpad-server",
		Short:         "Real-time collaborative code editor backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootLog := log.New("info")

			if err := godotenv.Load(); err != nil {
				bootLog.Debug().Err(err).Msg("no .env file loaded")
			}

			cfg, path, err := config.Load(bootLog, configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if dbPath != "" {
				cfg.DatabasePath = dbPath
			}

			logger := log.New(cfg.LogLevel)
			logger.Info().Str("config", path).Str("addr", cfg.Addr).Msg("starting pairpad server")

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := application.Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "path to config file")
	root.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	root.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")

	if err := root.ExecuteContext(context.Background()); err != nil {
		bootLog := log.New("error")
		bootLog.Fatal().Err(err).Msg("server exited with error")
	}
}
