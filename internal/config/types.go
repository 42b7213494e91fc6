package config

// Default values.
const (
	DefaultTasksFileName = "tasks.json"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for taskman.
type Config struct {
	// Paths
	TasksFile string `toml:"tasks_file"`

	// Behavior
	ConfirmDelete bool `toml:"confirm_delete"`
	Color         bool `toml:"color"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}
