package config

import (
	"reflect"
	"strings"

	"transit-manager/core/cache"
	"transit-manager/core/database"
	"transit-manager/core/gtfsrt"
	"transit-manager/core/logger"
	"transit-manager/core/resolver"
	"transit-manager/core/server"
	"transit-manager/core/stopkv"
	"transit-manager/core/stopmongo"
	"transit-manager/core/storage"
	"transit-manager/core/transitapi"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Resolver holds the default lookup and write policies.
	Resolver resolver.Config `mapstructure:"resolver"`
	// Cache holds configuration for the in-memory stop and bus cache.
	Cache cache.Config `mapstructure:"cache"`
	// KV holds configuration for the embedded key-value store.
	KV stopkv.Config `mapstructure:"kv"`
	// Database holds configuration for the SQL stop store.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage stop store (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Mongo holds configuration for the MongoDB stop store.
	Mongo stopmongo.Config `mapstructure:"mongo"`
	// API holds configuration for the remote transit API.
	API transitapi.Config `mapstructure:"api"`
	// GTFSRT holds configuration for the GTFS Realtime feed.
	GTFSRT gtfsrt.Config `mapstructure:"gtfsrt"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. RESOLVER_AUTO_SAVE_STOP -> resolver.auto_save_stop)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
