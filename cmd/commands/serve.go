package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ncobase/listing/config"
	"github.com/ncobase/listing/logging/hooks/meilisearch"
	"github.com/ncobase/listing/logging/logger"
	"github.com/ncobase/listing/observes"
	"github.com/ncobase/listing/server"
	"github.com/ncobase/listing/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the search API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			info := version.GetVersionInfo()
			l := logger.StdLogger()
			l.SetVersion(info.Version)
			cleanup, err := l.Init(cfg.AppName, cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			defer cleanup()

			if cfg.Logger.Meilisearch {
				hook, err := meilisearch.NewHook(cfg.Meilisearch, cfg.Logger)
				if err != nil {
					l.Warnf(ctx, "meilisearch log hook disabled: %v", err)
				} else {
					l.AddHook(hook)
				}
			}

			shutdownTracer, err := observes.NewTracer(ctx, cfg.Tracer, info)
			if err != nil {
				return fmt.Errorf("failed to init tracer: %w", err)
			}
			shutdownSentry, err := observes.NewSentry(cfg.Sentry, cfg.AppName, info)
			if err != nil {
				return fmt.Errorf("failed to init sentry: %w", err)
			}
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownTracer(flushCtx); err != nil {
					l.Warnf(flushCtx, "failed to flush traces: %v", err)
				}
				_ = shutdownSentry(flushCtx)
			}()

			config.Watch(cfg, func(next *config.Config) {
				l.SetLevel(logrus.Level(next.Logger.Level))
				l.Info(ctx, "configuration reloaded, restart to apply search and site changes")
			}, func(err error) {
				l.Warn(ctx, err)
			})

			srv, err := server.New(ctx, cfg, l)
			if err != nil {
				return err
			}
			l.Infof(ctx, "starting %s %s", cfg.AppName, info.Version)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	return cmd
}
