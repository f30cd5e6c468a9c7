package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Learning LearningConfig `mapstructure:"learning" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// LearningConfig tunes the learning engine defaults.
type LearningConfig struct {
	// SessionSize is the target number of words per learning run.
	SessionSize int `mapstructure:"session_size" validate:"required,gt=0,lte=50"`

	// DailyWordCount is how many words the daily sample contains.
	DailyWordCount int `mapstructure:"daily_word_count" validate:"required,gt=0,lte=50"`
}
