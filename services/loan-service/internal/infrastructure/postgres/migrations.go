package postgres

import "embed"

// Migrations holds the loan-service schema, applied with
// pkg/postgres.RunMigrations(dsn, Migrations, MigrationsDir).
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"
