package database

//nolint:revive
import (
	"fmt"
	"listo/config"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10

	sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqliteMemory  = ":memory:"
)

const (
	DriverPostgres = config.DriverPostgres
	DriverSQLite   = config.DriverSQLite
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Connection holds the read and write handles. With SQLite both point at the same pool.
type Connection struct {
	Driver string
	Read   *sqlx.DB
	Write  *sqlx.DB
}

func New(config *config.Config) *Connection {
	switch config.DB.Driver {
	case DriverPostgres:
		return &Connection{
			Driver: DriverPostgres,
			Read:   CreatePostgresReadConn(*config),
			Write:  CreatePostgresWriteConn(*config),
		}
	default:
		db, err := OpenSQLite(config.DB.SQLite.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", config.DB.SQLite.Path).Msg("Failed to open sqlite database")
		}

		return NewSQLiteConnection(db)
	}
}

// NewSQLiteConnection wraps a single SQLite pool as both read and write handle.
func NewSQLiteConnection(db *sqlx.DB) *Connection {
	return &Connection{
		Driver: DriverSQLite,
		Read:   db,
		Write:  db,
	}
}

// OpenSQLite opens path with foreign keys on. ":memory:" gives a private in-memory database.
// The pool is limited to one connection so writes are serialized.
func OpenSQLite(path string) (*sqlx.DB, error) {
	if path == sqliteMemory {
		path = "file::memory:"
	}

	descriptor := path + "?" + sqlitePragmas

	db, err := sqlx.Connect(DriverSQLite, descriptor)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)

	log.Info().Str("path", path).Msg("Connected to database")

	return db, nil
}

func (c *Connection) Close() error {
	if c.Read != c.Write {
		if err := c.Read.Close(); err != nil {
			return fmt.Errorf("failed to close read connection: %w", err)
		}
	}

	if err := c.Write.Close(); err != nil {
		return fmt.Errorf("failed to close write connection: %w", err)
	}

	return nil
}

// getDBName returns the database name with prefix if configured
func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"write",
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		config.DB.Postgres.Write.Host,
		config.DB.Postgres.Write.Port,
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"read",
		config.DB.Postgres.Read.Username,
		config.DB.Postgres.Read.Password,
		config.DB.Postgres.Read.Host,
		config.DB.Postgres.Read.Port,
		getDBName(config, config.DB.Postgres.Read.Name),
		config.DB.Postgres.Read.SSLMode,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// PostgresURL builds the connection URL shared by the driver and the migrator.
func PostgresURL(username, password, host, port, dbName, sslMode string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)
}

// CreatePostgresConnection creates a database connection, retrying up to maxRetry times.
func CreatePostgresConnection(name, username, password, host, port, dbName, sslMode string, maxRetry, waitTime int) *sqlx.DB {
	descriptor := PostgresURL(username, password, host, port, dbName, sslMode)

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect(DriverPostgres, descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", host).
				Str("port", port).
				Str("dbName", dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", host).
			Str("port", port).
			Str("dbName", dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().Str("name", name).Str("host", host).Msg("Giving up connecting to database")

	return nil
}
