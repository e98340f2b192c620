package helper

import (
	"fmt"
	"net"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"aula/config"
)

const migrationSourcePath = "file://migrations/postgres"

// MigrateUp applies all pending database migrations.
func MigrateUp(cfg *config.Config) {
	m := newMigrate(cfg)

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	log.Info().Msg("Migrations applied")
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(cfg *config.Config) {
	m := newMigrate(cfg)

	if err := m.Steps(-1); err != nil {
		log.Fatal().Err(err).Msg("Failed to roll back migration")
	}

	log.Info().Msg("Migration rolled back")
}

func newMigrate(cfg *config.Config) *migrate.Migrate {
	pg := cfg.DB.Postgres

	descriptor := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s&x-migrations-table=%s",
		pg.Username,
		pg.Password,
		net.JoinHostPort(pg.Host, pg.Port),
		pg.Name,
		pg.SSLMode,
		pg.MigrationTable,
	)

	m, err := migrate.New(migrationSourcePath, descriptor)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize migrations")
	}

	return m
}
