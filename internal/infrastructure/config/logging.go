package config

// LoggingConfig configures the process logger
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	// Only read when Output is "file"
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`
}
