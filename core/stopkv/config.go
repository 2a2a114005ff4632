package stopkv

// Config holds configuration for the embedded key-value store.
type Config struct {
	// Enabled registers the key-value store.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string `mapstructure:"path" default:"data/badger"`
	// InMemory keeps everything in memory.
	InMemory bool `mapstructure:"in_memory" default:"false"`
	// SyncWrites waits for every write to reach the disk.
	SyncWrites bool `mapstructure:"sync_writes" default:"true"`
	// BusTTLSeconds is how long a saved bus list stays readable.
	BusTTLSeconds int `mapstructure:"bus_ttl_seconds" default:"60"`
	// GCIntervalSeconds is how often value log GC runs. Zero disables it.
	GCIntervalSeconds int `mapstructure:"gc_interval_seconds" default:"300"`
}
