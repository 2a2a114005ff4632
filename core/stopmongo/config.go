package stopmongo

// Config holds configuration for the MongoDB stop store.
type Config struct {
	// Enabled registers the MongoDB store.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// URI is the MongoDB connection string.
	URI string `mapstructure:"uri" default:"mongodb://localhost:27017"`
	// Database is the database name.
	Database string `mapstructure:"database" default:"transit"`
	// Collection is the collection holding stops.
	Collection string `mapstructure:"collection" default:"stops"`
	// TimeoutSeconds bounds connecting and pinging the server.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
