// Package database owns the connection pool and schema migrations.
package database

import (
	"context"
	"embed"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/errx"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Connect opens a postgres pool with the service's default limits
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, errx.Wrap(err, "failed to connect to database", errx.TypeInternal)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// Migrate applies every pending migration
func Migrate(ctx context.Context, db *sqlx.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return errx.Wrap(err, "failed to set migration dialect", errx.TypeInternal)
	}
	if err := goose.UpContext(ctx, db.DB, "migrations"); err != nil {
		return errx.Wrap(err, "failed to apply migrations", errx.TypeInternal)
	}
	return nil
}

// MigrationNames lists the embedded migration files in order
func MigrationNames() ([]string, error) {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

type gooseLogger struct{}

func (gooseLogger) Fatalf(format string, v ...any) { logx.Fatalf(format, v...) }
func (gooseLogger) Printf(format string, v ...any) { logx.Infof(format, v...) }
