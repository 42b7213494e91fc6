package config

import "flag"

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskman", flag.ContinueOnError)
	}

	// Paths
	fs.StringVar(&cfg.TasksFile, "file", cfg.TasksFile, "Path to tasks file")

	// Behavior
	fs.BoolVar(&cfg.ConfirmDelete, "confirm-delete", cfg.ConfirmDelete, "Ask before deleting tasks")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "Colorize command output")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	return fs.Parse(args)
}
