package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Every key carries a default so the server boots with no configuration
	// at all. Defaults also register the keys with viper, which is what lets
	// AutomaticEnv feed them through Unmarshal.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("scheduler.interval_seconds", 60)
	v.SetDefault("scheduler.stop_timeout_seconds", 5)
	v.SetDefault("snapshot.path", "reminders.json")
	v.SetDefault("snapshot.save_schedule", "@every 5m")
	v.SetDefault("snapshot.load_on_start", true)

	// Optional config file in the working directory. A missing file is fine;
	// any other read failure is not.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override file values, with the REMIND_ prefix
	// and dots replaced by underscores (e.g. REMIND_SERVER_PORT).
	v.SetEnvPrefix("REMIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
