package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRepair(); err != nil {
		return err
	}
	if err := c.validateInput(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRepair() error {
	if c.Repair.Window <= 0 {
		return errors.New("repair.window must be positive")
	}
	if c.Repair.MaxLineBytes < 1024 {
		return errors.New("repair.max_line_bytes must be at least 1024")
	}
	if c.Repair.OutputSuffix == c.Repair.QuarantineSuffix {
		return errors.New("repair.quarantine_suffix must differ from repair.output_suffix")
	}
	return nil
}

func (c *Config) validateInput() error {
	switch c.Input.Encoding {
	case "auto", "utf-8", "utf-16le", "utf-16be", "latin-1":
		return nil
	default:
		return fmt.Errorf("input.encoding: unsupported value %q (use auto, utf-8, utf-16le, utf-16be, or latin-1)", c.Input.Encoding)
	}
}
