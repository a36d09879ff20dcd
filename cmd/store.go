package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/truckline/bdm-console/internal/db"
	"github.com/truckline/bdm-console/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "console.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &db.PoolConfig{
			MaxConns: int32(cfg.Store.MaxConns),
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initPool opens a raw pgx pool for the packages that query Postgres
// directly (reference data, forecast, CRM). The server requires the
// postgres driver; sqlite covers only local scorecard work.
func initPool(ctx context.Context) (*pgxpool.Pool, error) {
	if cfg.Store.Driver != "postgres" {
		return nil, eris.Errorf("driver %s does not support the dashboard server; use postgres", cfg.Store.Driver)
	}
	return db.Connect(ctx, cfg.Store.DatabaseURL, &db.PoolConfig{
		MaxConns: int32(cfg.Store.MaxConns),
	})
}
