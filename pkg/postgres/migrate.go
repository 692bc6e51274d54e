package postgres

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// RunMigrations applies all pending migrations found under dir in fsys
// (typically an embed.FS compiled into the service binary). It returns nil
// when the schema is already current.
func RunMigrations(dsn string, fsys fs.FS, dir string) error {
	m, err := newMigrator(dsn, fsys, dir)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}
	return nil
}

// RunMigrationsDown rolls back every migration found under dir in fsys.
func RunMigrationsDown(dsn string, fsys fs.FS, dir string) error {
	m, err := newMigrator(dsn, fsys, dir)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations down: %w", err)
	}
	return nil
}

func newMigrator(dsn string, fsys fs.FS, dir string) (*migrate.Migrate, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("postgres: open migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: create migrator: %w", err)
	}
	return m, nil
}
