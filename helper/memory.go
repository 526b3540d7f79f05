package helper

import (
	"fmt"
	"listo/infras/database"
)

// NewMemoryConnection opens a private in-memory SQLite database with every migration applied.
func NewMemoryConnection() (*database.Connection, error) {
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		return nil, fmt.Errorf("error opening memory database: %w", err)
	}

	conn := database.NewSQLiteConnection(db)

	if err := Runner(conn, "", ActionUp); err != nil {
		_ = conn.Close()

		return nil, err
	}

	return conn, nil
}
