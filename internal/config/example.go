package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Taskman configuration file
# Values can be overridden by TASKMAN_* environment variables or CLI flags

# Tasks file (default: tasks.json next to the taskman executable)
# Supports ~ expansion and %VAR% on Windows
# tasks_file = "~/todo/tasks.json"

# Ask before deleting tasks
confirm_delete = true

# Colorize command output
color = true

# Logging
log_level = "info"     # debug, info, warn, error
log_format = "text"    # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
