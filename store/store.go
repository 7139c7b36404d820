// Package store is the Persistence Store: an append-only Postgres-backed
// record of submissions, tournaments, tournament configuration,
// tournament entries, and match resolutions.
//
// Built on sqlx positional ($N) queries over lib/pq. Schema migrations are
// embedded and applied via golang-migrate.
package store

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"pdarena.dev/service/apperr"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store is a handle over the Postgres connection pool backing the
// service. All methods are safe for concurrent use.
type Store struct {
	db *sqlx.DB
}

// Open connects to databaseURL, verifies connectivity, and applies any
// pending migrations.
func Open(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	db.SetMaxOpenConns(16)

	if err := migrateUp(db, databaseURL); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrateUp(db *sqlx.DB, databaseURL string) error {
	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("store: load migrations: %w", err)
	}
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("store: migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("store: migration init: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("store: migrate up: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// wrapQueryErr classifies an sqlx query failure as an internal error; the
// caller is responsible for mapping "not found" conditions (an empty
// result slice) to a domain-specific apperr.Code.
func wrapQueryErr(err error) error {
	if err == nil {
		return nil
	}
	return apperr.Wrap(apperr.InternalServerError, err)
}
