/*
Package db handles database connections and schema creation.

# Opening a Connection

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "postgres" (lib/pq) and "sqlite"
(modernc.org/sqlite). The sqlite pool is limited to one connection.

# Schema Creation

CreateSchema initializes all required tables for the given dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - polls: Question, JSON-encoded option list, time budget, lifecycle state
  - students: Registered participants with a nullable connection handle
  - responses: One answer per (poll, student) pair

# Relationships

	polls 1──* responses
	students 1──* responses

Foreign keys use ON DELETE CASCADE. The UNIQUE (poll_id, student_id)
constraint on responses is the atomic duplicate guard relied on by the
response ledger; it is the only mutual-exclusion primitive in the
system.
*/
package db
