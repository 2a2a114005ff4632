// Package config provides configuration management for the Transit Manager.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of every section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, API key and timeouts
//   - Log: Logging level and format
//   - Resolver: default policies (auto save, setter and deleter fan-out)
//   - Cache, KV, Database, Storage, Mongo: offline stop stores, each with an enabled flag
//   - API, GTFSRT: online sources
//
// Environment variables map to nested keys by replacing dots with underscores,
// e.g. RESOLVER_USE_ALL_STOP_SETTERS or DATABASE_ENABLED.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
