// Command api serves the message board and events over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-rel/jpql-example/api"
	"github.com/go-rel/jpql-example/config"
	"github.com/go-rel/jpql-example/session"
	"github.com/go-rel/mysql"
	"github.com/go-rel/rel"
	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var logger, _ = zap.NewProduction(zap.Fields(zap.String("type", "main")))

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Serve the message board and events API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default is ./config.yaml or $HOME/.config/jpql-example/config.yaml)")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	adapter, err := mysql.Open(cfg.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer adapter.Close()

	var (
		repository = rel.New(adapter)
		registry   = prometheus.NewRegistry()
		server     = http.Server{
			Addr:    cfg.Addr,
			Handler: api.NewMux(repository, registry, cfg.QueryOptions()...),
		}
		group, groupCtx = errgroup.WithContext(ctx)
	)

	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	session.MustRegister(registry)

	group.Go(func() error {
		logger.Info("server starting", zap.String("addr", cfg.Addr), zap.String("naming", cfg.Naming))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("server stopping")
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
