package infra

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"roadwatch.dev/backend/internal/app/appconfig"
)

func Postgres(conf *appconfig.Config) (*bun.DB, error) {
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(conf.PostgresDSN)))

	if conf.PostgresMaxOpenConns > 0 {
		pgdb.SetMaxOpenConns(conf.PostgresMaxOpenConns)
	}
	if conf.PostgresMaxIdleConns > 0 {
		pgdb.SetMaxIdleConns(conf.PostgresMaxIdleConns)
	}
	if conf.PostgresConnMaxLifeTime > 0 {
		pgdb.SetConnMaxLifetime(conf.PostgresConnMaxLifeTime)
	}
	if conf.PostgresConnMaxIdleTime > 0 {
		pgdb.SetConnMaxIdleTime(conf.PostgresConnMaxIdleTime)
	}

	// Create a Bun db on top of it.
	db := bun.NewDB(pgdb, pgdialect.New())
	if conf.DevMode {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(conf.BunDebugVerbose)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("infra: psql: failed to ping database")
		return nil, err
	}

	return db, nil
}
