// Package config provides configuration management for card-sync.
//
// It uses Viper to read environment variables, optionally seeded from a .env
// file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, CORS origins, shutdown bound
//   - Log: level and format
//   - Board: project board API URL, token, project ID, fetch concurrency
//   - Sink: destination driver (airtable, database), table and page size
//   - Airtable: hosted table API URL, key and base
//   - Database: SQL connection for the database sink
//   - Storage: optional snapshot archive in object storage
//   - Sync: poll interval, write spacing, cache TTL and identity field
//
// Environment variables map to keys by replacing "." with "_", so BOARD_TOKEN
// sets board.token.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
