package config

import (
	"strings"

	"github.com/teranos/enumgen/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Module name is optional here; commands that generate require it.
	if strings.ContainsAny(c.Module.Name, `/\ `) {
		return errors.Newf("module.name must be a bare identifier, got %q", c.Module.Name)
	}

	switch c.Generator.CodingStyle {
	case "", StyleUpperCamelCase, StyleLowerCamelCase, StyleSnakeCase:
	default:
		return errors.WithHintf(
			errors.Newf("generator.coding_style %q is not recognized", c.Generator.CodingStyle),
			"use one of %s, %s, %s", StyleUpperCamelCase, StyleLowerCamelCase, StyleSnakeCase)
	}

	// Workers: 0 = GOMAXPROCS, negative = invalid
	if c.Generator.Workers < 0 {
		return errors.Newf("generator.workers must be >= 0, got %d", c.Generator.Workers)
	}

	if c.Formatter.Enabled {
		if strings.TrimSpace(c.Formatter.Command) == "" {
			return errors.New("formatter.command cannot be empty when enabled")
		}
		if c.Formatter.TimeoutSeconds <= 0 {
			return errors.Newf("formatter.timeout_seconds must be > 0, got %d", c.Formatter.TimeoutSeconds)
		}
	}

	return nil
}

// RequireModule checks the settings needed to locate a module's files
func (c *Config) RequireModule() error {
	if c.Module.Name == "" {
		return errors.WithHint(errors.New("module.name is not set"),
			"pass --module or set [module] name in enumgen.toml")
	}
	if c.Module.GenDir == "" {
		return errors.New("module.gen_dir cannot be empty")
	}
	return nil
}
