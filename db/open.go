package db

import (
	"database/sql"
	"fmt"
)

// Open connects to the configured database.
//
// databaseType selects the driver: "postgres" (lib/pq) or "sqlite"
// (modernc.org/sqlite). The sqlite pool is pinned to a single
// connection; the driver serializes writers anyway and a single
// connection avoids SQLITE_BUSY under concurrent handlers.
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	var driver string
	switch databaseType {
	case "postgres":
		driver = "postgres"
	case "sqlite":
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if databaseType == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	return conn, nil
}
