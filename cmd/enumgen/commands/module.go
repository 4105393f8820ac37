// Package commands implements the enumgen subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/enumgen/config"
	"github.com/teranos/enumgen/driver"
	"github.com/teranos/enumgen/logger"
)

// addModuleFlags registers the flags that locate a module. They override
// the [module] table of enumgen.toml.
func addModuleFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("module", "m", "", "Module name, e.g. Core")
	cmd.Flags().StringP("type", "t", "", "Module type: lib, ref, exe, plugin")
	cmd.Flags().StringP("src", "s", "", "Module source directory holding include/ and local_include/")
	cmd.Flags().StringP("gen", "g", "", "Directory receiving the generated files")
}

// loadConfig reads enumgen.toml (the --config path or the nearest one
// upwards) with ENUMGEN_* overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// moduleContext builds the generation context from config plus flags.
func moduleContext(cmd *cobra.Command) (driver.Context, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return driver.Context{}, err
	}

	overrides := map[string]*string{
		"module": &cfg.Module.Name,
		"type":   &cfg.Module.Type,
		"src":    &cfg.Module.SourceDir,
		"gen":    &cfg.Module.GenDir,
	}
	for flag, dst := range overrides {
		if cmd.Flags().Lookup(flag) == nil || !cmd.Flags().Changed(flag) {
			continue
		}
		*dst, _ = cmd.Flags().GetString(flag)
	}
	if noFormat(cmd) {
		cfg.Formatter.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return driver.Context{}, err
	}
	if err := cfg.RequireModule(); err != nil {
		return driver.Context{}, err
	}

	if logger.ShouldOutput(logger.Verbosity, logger.OutputConfig) {
		logger.Debugw("Resolved module configuration",
			logger.FieldModule, cfg.Module.Name,
			logger.FieldModuleType, cfg.Module.Type,
			"config", cfg.String())
	}
	return driver.NewContext(cfg), nil
}

func noFormat(cmd *cobra.Command) bool {
	if cmd.Flags().Lookup("no-format") == nil {
		return false
	}
	v, _ := cmd.Flags().GetBool("no-format")
	return v
}
