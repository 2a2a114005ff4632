package gtfsrt

// Config holds configuration for the GTFS Realtime feed.
type Config struct {
	// Enabled registers the feed as a Bus Getter.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// FeedURL is the TripUpdates feed location.
	FeedURL string `mapstructure:"feed_url" default:""`
	// APIKey is sent in the x-api-key header when not empty.
	APIKey string `mapstructure:"api_key" default:""`
	// StopIDPrefix is prepended to numeric stop ids to build feed stop ids.
	StopIDPrefix string `mapstructure:"stop_id_prefix" default:""`
	// TimeoutSeconds bounds every fetch.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// RefreshSeconds is how long a fetched feed is reused.
	RefreshSeconds int `mapstructure:"refresh_seconds" default:"30"`
}
