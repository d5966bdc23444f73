package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateConversion(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSource() error {
	if !strings.HasPrefix(c.Source.Extension, ".") || len(c.Source.Extension) < 2 {
		return fmt.Errorf("source.extension %q must be a file extension like %q", c.Source.Extension, ".wav")
	}
	return nil
}

func (c *Config) validateConversion() error {
	if c.Conversion.Jobs < 1 {
		return errors.New("conversion.jobs must be at least 1")
	}
	if c.Conversion.DiagnosticLimit < 1 {
		return errors.New("conversion.diagnostic_limit must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be %q or %q", c.Logging.Format, "console", "json")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}
