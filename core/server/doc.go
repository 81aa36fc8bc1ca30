// Package server holds the HTTP server configuration.
//
// The main application entry point builds the Fiber app; this package only
// defines the settings it reads: the listen port, the CORS origins allowed on
// the read endpoints and the graceful shutdown bound.
package server
