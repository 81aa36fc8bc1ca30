// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL or SQLite connections from the application
// configuration. The relational card sink (feature/table) is its only user.
//
// # Schema Inspection
//
// GetTableColumns reads a table's column definitions with SHOW COLUMNS on
// MySQL and PRAGMA table_info on SQLite. MissingColumns compares them with the
// columns a sink expects so a drifted schema is reported at startup.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "cards", []string{"card_id"})
package database
