package transitapi

// Config holds configuration for the remote transit API.
type Config struct {
	// Enabled registers the API as an online Stop Getter and as a Bus Getter.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// BaseURL is the root of the API, without trailing slash.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:9000"`
	// APIKey is sent in the X-API-Key header when not empty.
	APIKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds bounds every request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// RequestsPerSecond paces outgoing requests. Zero disables pacing.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"10"`
	// Burst is the number of requests allowed at once.
	Burst int `mapstructure:"burst" default:"5"`
	// Authoritative makes a 404 mean the stop does not exist at all.
	Authoritative bool `mapstructure:"authoritative" default:"true"`
}
