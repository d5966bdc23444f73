package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSource()
	c.normalizeConversion()
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDir) == "" {
		c.Paths.HistoryDir = defaultHistoryDir
	}
	if c.Paths.HistoryDir, err = expandPath(c.Paths.HistoryDir); err != nil {
		return fmt.Errorf("paths.history_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSource() {
	ext := strings.ToLower(strings.TrimSpace(c.Source.Extension))
	if ext == "" {
		ext = defaultSourceExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Source.Extension = ext
}

func (c *Config) normalizeConversion() {
	keys := make([]string, 0, len(c.Conversion.Formats))
	for _, key := range c.Conversion.Formats {
		key = strings.ToLower(strings.TrimSpace(key))
		if key != "" {
			keys = append(keys, key)
		}
	}
	c.Conversion.Formats = keys
	if c.Conversion.Jobs <= 0 {
		c.Conversion.Jobs = defaultJobs
	}
	if c.Conversion.DiagnosticLimit <= 0 {
		c.Conversion.DiagnosticLimit = defaultDiagnosticLimit
	}
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
