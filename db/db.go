// Package db handles the bot's persisted state.
package db

import (
	"context"
	"database/sql"
	"embed"
	"os"

	"emperror.dev/errors"
	"github.com/Masterminds/squirrel"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"

	"github.com/nekrodarkmoon/zen/db/stats"

	migrate "github.com/rubenv/sql-migrate"

	// pgx driver for migrations
	_ "github.com/jackc/pgx/v4/stdlib"
)

// sq is a squirrel builder for postgres
var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// DB is the bot's database.
type DB struct {
	*pgxpool.Pool

	Sugar *zap.SugaredLogger
	Hub   *sentry.Hub
	Stats *stats.Client
}

// New connects to the database at the given URL, running any pending
// migrations first.
func New(url string, sugar *zap.SugaredLogger, hub *sentry.Hub) (*DB, error) {
	err := RunMigrations(url)
	if err != nil {
		return nil, errors.Wrap(err, "running migrations")
	}

	pool, err := pgxpool.Connect(context.Background(), url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}

	db := &DB{
		Pool:  pool,
		Sugar: sugar,
		Hub:   hub,
	}

	if os.Getenv("INFLUX_URL") != "" {
		db.Stats = stats.New(
			os.Getenv("INFLUX_URL"),
			os.Getenv("INFLUX_TOKEN"),
			os.Getenv("INFLUX_ORG"),
			os.Getenv("INFLUX_DB"),
		)
	}

	return db, nil
}

//go:embed migrations
var fs embed.FS

// RunMigrations runs all of the migrations in migrations/.
func RunMigrations(url string) (err error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}

	// we close this because we end up using pgx's native driver for all other queries.
	defer db.Close()

	err = db.Ping()
	if err != nil {
		return errors.Wrap(err, "pinging database")
	}

	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: fs,
		Root:       "migrations",
	}

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return errors.Wrap(err, "executing migrations")
	}

	if n != 0 {
		zap.S().Debugf("Performed %v migrations!", n)
	}
	return nil
}
