package config

import (
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if _, err := c.CategoryTable(); err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (want debug, info, warn, or error)", c.Logging.Level)
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.LogFile == "" {
		return fmt.Errorf("paths.log_file must be set")
	}
	if c.History.Enabled && c.Paths.HistoryDB == "" {
		return fmt.Errorf("paths.history_db must be set when history is enabled")
	}
	return nil
}
