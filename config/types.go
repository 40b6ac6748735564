package config

// Config represents the complete configuration structure
type Config struct {
	StatusPage StatusPageConfig `mapstructure:"statuspage"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// StatusPageConfig holds status page API connection details
type StatusPageConfig struct {
	URL       string  `mapstructure:"url"`
	APIKey    string  `mapstructure:"api_key"`
	PageID    string  `mapstructure:"page_id"`
	Timeout   float64 `mapstructure:"timeout"`
	VerifySSL bool    `mapstructure:"verify_ssl"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
