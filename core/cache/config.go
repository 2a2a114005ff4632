package cache

// Config holds configuration for the in-memory cache.
type Config struct {
	// Enabled registers the cache as the first offline source.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// StopTTLSeconds is how long a stop stays cached.
	StopTTLSeconds int `mapstructure:"stop_ttl_seconds" default:"1800"`
	// BusTTLSeconds is how long a bus list stays cached.
	BusTTLSeconds int `mapstructure:"bus_ttl_seconds" default:"30"`
}
