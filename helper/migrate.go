package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"listo/config"
	"listo/infras/database"
	"listo/migrations"

	"github.com/golang-migrate/migrate/v4"
	migrateDatabase "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var errUnknownAction = errors.New("unknown migration action")

// getMigrator binds the embedded migrations of conn's driver to its write handle.
// The returned instance must not be closed: closing it closes conn as well.
func getMigrator(conn *database.Connection, migrationTable string) (*migrate.Migrate, error) {
	var (
		driver migrateDatabase.Driver
		err    error
	)

	switch conn.Driver {
	case database.DriverPostgres:
		driver, err = postgres.WithInstance(conn.Write.DB, &postgres.Config{MigrationsTable: migrationTable})
	default:
		driver, err = sqlite.WithInstance(conn.Write.DB, &sqlite.Config{MigrationsTable: migrationTable})
	}

	if err != nil {
		return nil, fmt.Errorf("error creating migrate driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, conn.Driver)
	if err != nil {
		return nil, fmt.Errorf("error loading migrations: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", source, conn.Driver, driver)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(conn *database.Connection, migrationTable, action string) error {
	mig, err := getMigrator(conn, migrationTable)
	if err != nil {
		return err
	}

	switch action {
	case ActionUp:
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Str("driver", conn.Driver).Msg("Database migrations completed successfully")

		return nil
	case ActionDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Str("driver", conn.Driver).Msg("Database migrations rolled back successfully")

		return nil
	case ActionStepUp:
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Str("driver", conn.Driver).Msg("Database migrations completed successfully")

		return nil
	case ActionDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Str("driver", conn.Driver).Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("%w: %s", errUnknownAction, action)
}

func Up(conn *database.Connection, config *config.Config) error {
	return Runner(conn, config.DB.MigrationTable, ActionUp)
}

func StepUp(conn *database.Connection, config *config.Config) error {
	return Runner(conn, config.DB.MigrationTable, ActionStepUp)
}

func Down(conn *database.Connection, config *config.Config) error {
	return Runner(conn, config.DB.MigrationTable, ActionDown)
}

func Drop(conn *database.Connection, config *config.Config) error {
	return Runner(conn, config.DB.MigrationTable, ActionDrop)
}
