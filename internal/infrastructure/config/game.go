package config

// GameConfig holds the game runner configuration
type GameConfig struct {
	// Path to the tuning document; empty uses the built-in table
	TuningPath string `mapstructure:"tuning_path"`

	// Address allowed to run admin operations (mint, grants); empty disables them
	Admin string `mapstructure:"admin"`

	// Compressed event log written alongside the database
	EventLog EventLogConfig `mapstructure:"event_log"`
}

// EventLogConfig holds the zstd JSONL event log configuration
type EventLogConfig struct {
	// Enable writing committed events to disk
	Enabled bool `mapstructure:"enabled"`

	// Directory receiving one file per hour
	Dir string `mapstructure:"dir"`

	// zstd encoder level, 1 (fastest) to 4 (best compression)
	Level int `mapstructure:"level" validate:"omitempty,min=1,max=4"`
}
