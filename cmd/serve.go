package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/truckline/bdm-console/internal/api"
	"github.com/truckline/bdm-console/internal/auth"
	"github.com/truckline/bdm-console/internal/crm"
	"github.com/truckline/bdm-console/internal/db"
	"github.com/truckline/bdm-console/internal/forecast"
	"github.com/truckline/bdm-console/internal/refdata"
	"github.com/truckline/bdm-console/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		pool, err := initPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			return err
		}

		var mgr *auth.Manager
		if cfg.Auth.Enabled {
			mgr, err = auth.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer,
				time.Duration(cfg.Auth.ExpirationHours)*time.Hour)
			if err != nil {
				return err
			}
		} else {
			zap.L().Warn("auth disabled, all endpoints are open")
		}

		server := &api.Server{
			Scorecards:        store.NewPostgresFromPool(pool),
			RefData:           refdata.NewPostgresStore(pool),
			Forecast:          forecast.NewPostgresStore(pool),
			CRM:               crm.NewPostgresStore(pool),
			Auth:              mgr,
			RequestsPerSecond: cfg.Server.RequestsPerSecond,
			AllowedOrigins:    cfg.Server.AllowedOrigins,
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           server.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			zap.L().Info("starting server", zap.Int("port", port))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
