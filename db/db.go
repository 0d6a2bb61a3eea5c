package db

import (
	"context"
	"database/sql"
	"embed"

	"emperror.dev/errors"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/mediocregopher/radix/v4"

	"github.com/balt-dev/titanium/common"
	"github.com/balt-dev/titanium/db/stats"

	migrate "github.com/rubenv/sql-migrate"

	// pgx driver for migrations
	_ "github.com/jackc/pgx/v4/stdlib"
)

// sq is a squirrel builder for postgres
var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type DB struct {
	*pgxpool.Pool

	Redis radix.Client

	// Stats is nil when InfluxDB is not configured.
	Stats *stats.Client
}

func New(postgres, redis string, autoMigrate bool) (*DB, error) {
	if autoMigrate {
		err := RunMigrations(postgres)
		if err != nil {
			return nil, errors.Wrap(err, "running migrations")
		}
	}

	pool, err := pgxpool.Connect(context.Background(), postgres)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}

	redisPool, err := (&radix.PoolConfig{}).New(context.Background(), "tcp", redis)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to redis")
	}

	db := &DB{
		Pool:  pool,
		Redis: redisPool,
	}

	return db, nil
}

//go:embed migrations
var fs embed.FS

// RunMigrations runs all of the migrations in migrations/.
func RunMigrations(postgres string) (err error) {
	db, err := sql.Open("pgx", postgres)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}

	// we close this because we end up using pgx's native driver for all other queries.
	defer db.Close()

	err = db.Ping()
	if err != nil {
		return errors.Wrap(err, "pinging database")
	}

	// set up migrations from the embedded filesystem
	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: fs,
		Root:       "migrations",
	}

	// run migrations!
	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return errors.Wrap(err, "running migrations")
	}

	if n != 0 {
		common.Log.Debugf("Performed %v migrations!", n)
	}
	return nil
}
