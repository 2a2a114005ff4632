// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure and small helpers derived from it.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key and the read/write timeouts.
//
// # Usage
//
// This package is used by core/config to embed server settings and by the start
// command to build the Fiber application.
package server
