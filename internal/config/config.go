package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error fatal"`
	// Add other server settings as needed (e.g., timeouts)
}

// SchedulerConfig contains the reminder check loop settings.
type SchedulerConfig struct {
	// IntervalSeconds is the fixed delay between scheduler scans.
	IntervalSeconds int `mapstructure:"interval_seconds" validate:"required,gt=0"`

	// StopTimeoutSeconds bounds how long Stop waits for an in-flight
	// scan to finish before giving up.
	StopTimeoutSeconds int `mapstructure:"stop_timeout_seconds" validate:"required,gt=0"`
}

// SnapshotConfig contains the JSON snapshot persistence settings.
type SnapshotConfig struct {
	// Path is the snapshot file location, relative to the working directory
	// unless absolute.
	Path string `mapstructure:"path" validate:"required"`

	// SaveSchedule is a cron expression (robfig/cron syntax, e.g.
	// "@every 5m") controlling the periodic snapshot job.
	SaveSchedule string `mapstructure:"save_schedule" validate:"required"`

	// LoadOnStart restores the store from the snapshot file during startup.
	LoadOnStart bool `mapstructure:"load_on_start"`
}
