package config

// MetricsConfig controls the prometheus endpoint served next to the API
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}
