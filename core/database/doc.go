// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL or SQLite connections from the application's
// configuration. The SQL stop store (core/stopdb) is built on top of it.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and pings the server with
// the configured timeout. SQLite databases (including ":memory:" in tests) are limited to
// a single open connection.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table on either dialect, and MissingColumns
// compares them against a required set. The stop store uses it to validate an existing
// schema when auto-migration is disabled.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	missing, err := database.MissingColumns(db, "stops", []string{"id", "name"})
package database
