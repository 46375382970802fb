package config

// Config represents the complete configuration structure
type Config struct {
	Bungie  BungieConfig  `mapstructure:"bungie"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BungieConfig holds the Bungie API credentials. All three fields are
// required: the client cannot build a request without them.
type BungieConfig struct {
	APIKey     string `mapstructure:"api_key"`
	AppID      string `mapstructure:"app_id"`
	AppVersion string `mapstructure:"app_version"`
}

// OutputConfig contains display settings
type OutputConfig struct {
	ShowDetails bool `mapstructure:"show_details"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
