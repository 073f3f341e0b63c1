package config

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Log level: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Log format: json, text
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// Output destination: stdout, stderr, file, none
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file none"`

	// File path (required if output is "file")
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	// Persist session logs to the database for `bakery logs`
	Persist *bool `mapstructure:"persist"`
}

// GameLogLevel maps the configured level to the game logger's level names
func (c LoggingConfig) GameLogLevel() string {
	switch c.Level {
	case "debug":
		return "DEBUG"
	case "warn":
		return "WARNING"
	case "error":
		return "ERROR"
	default:
		return "INFO"
	}
}

// PersistEnabled reports whether session logs are stored (default true)
func (c LoggingConfig) PersistEnabled() bool {
	return c.Persist == nil || *c.Persist
}
