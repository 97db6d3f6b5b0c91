package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRepair()
	c.normalizeInput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir()
	}
	if value, ok := os.LookupEnv("MENDLINE_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	if c.Paths.LogDir != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeRepair() {
	if c.Repair.Workers < 0 {
		c.Repair.Workers = 0
	}
	if c.Repair.Window <= 0 {
		c.Repair.Window = defaultWindow
	}
	if c.Repair.MaxLineBytes <= 0 {
		c.Repair.MaxLineBytes = defaultMaxLineBytes
	}
	c.Repair.OutputSuffix = strings.TrimSpace(c.Repair.OutputSuffix)
	if c.Repair.OutputSuffix == "" {
		c.Repair.OutputSuffix = defaultOutputSuffix
	}
	c.Repair.QuarantineSuffix = strings.TrimSpace(c.Repair.QuarantineSuffix)
	if c.Repair.QuarantineSuffix == "" {
		c.Repair.QuarantineSuffix = defaultQuarantineSuffix
	}
}

func (c *Config) normalizeInput() {
	c.Input.Encoding = strings.ToLower(strings.TrimSpace(c.Input.Encoding))
	if c.Input.Encoding == "" {
		c.Input.Encoding = defaultInputEncoding
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
