package resolver

// Config holds the default policies of a Resolver.
type Config struct {
	// AutoSaveStop saves stops found by online getters.
	AutoSaveStop bool `mapstructure:"auto_save_stop" default:"false"`
	// UseAllStopSetters saves to every setter instead of the first that succeeds.
	UseAllStopSetters bool `mapstructure:"use_all_stop_setters" default:"false"`
	// UseAllStopDeleters deletes from every deleter instead of the first that succeeds.
	UseAllStopDeleters bool `mapstructure:"use_all_stop_deleters" default:"true"`
	// UseAllBusSetters saves buses to every bus setter.
	UseAllBusSetters bool `mapstructure:"use_all_bus_setters" default:"false"`
	// UseAllBusDeleters deletes buses from every bus deleter.
	UseAllBusDeleters bool `mapstructure:"use_all_bus_deleters" default:"true"`
}

// DefaultConfig returns the policies used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		UseAllStopDeleters: true,
		UseAllBusDeleters:  true,
	}
}
