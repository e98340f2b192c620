package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"aula/config"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

// Connection wraps the single sync-history database handle. The reservation
// data itself lives in the calendar store, so one small connection is enough.
type Connection struct {
	DB *sqlx.DB
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	descriptor := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		pg.Username,
		pg.Password,
		net.JoinHostPort(pg.Host, pg.Port),
		pg.Name,
		pg.SSLMode,
	)

	for retry := range pg.MaxRetry {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("host", pg.Host).
				Str("port", pg.Port).
				Str("dbName", pg.Name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return &Connection{DB: sqlDB}
		}

		log.
			Error().
			Err(err).
			Str("host", pg.Host).
			Str("port", pg.Port).
			Str("dbName", pg.Name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	log.Fatal().Msg("Exhausted database connection retries")

	return nil
}
