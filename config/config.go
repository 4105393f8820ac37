// Package config loads enumgen settings from enumgen.toml, ENUMGEN_*
// environment variables and built-in defaults.
package config

import "fmt"

// Config represents the enumgen configuration
type Config struct {
	Module    ModuleConfig    `mapstructure:"module" toml:"module"`
	Generator GeneratorConfig `mapstructure:"generator" toml:"generator"`
	Headers   HeadersConfig   `mapstructure:"headers" toml:"headers"`
	Formatter FormatterConfig `mapstructure:"formatter" toml:"formatter"`
}

// ModuleConfig locates one module's schemas and generated outputs
type ModuleConfig struct {
	Name      string `mapstructure:"name" toml:"name"`             // e.g. "Core"
	Type      string `mapstructure:"type" toml:"type"`             // lib, ref, exe, plugin (lib/ref export their public API)
	SourceDir string `mapstructure:"source_dir" toml:"source_dir"` // holds include/Enums.* and local_include/Enums.*
	GenDir    string `mapstructure:"gen_dir" toml:"gen_dir"`       // receives <prefix><name>Enums.hpp and local/
}

// GeneratorConfig controls the shape of the emitted code
type GeneratorConfig struct {
	RootNamespace string `mapstructure:"root_namespace" toml:"root_namespace"` // default namespace of definitions (default: lumiere)
	MacroPrefix   string `mapstructure:"macro_prefix" toml:"macro_prefix"`     // prefix of export macro and file names
	CodingStyle   string `mapstructure:"coding_style" toml:"coding_style"`     // upper-camel-case, lower-camel-case, snake-case
	Fmtlib        bool   `mapstructure:"fmtlib" toml:"fmtlib"`                 // emit fmt::formatter specializations
	Workers       int    `mapstructure:"workers" toml:"workers"`               // definitions built concurrently (0 = GOMAXPROCS)
}

// HeadersConfig names the support headers every generated header includes
type HeadersConfig struct {
	FlagType   string `mapstructure:"flag_type" toml:"flag_type"`     // provides DECLARE_SCOPED_MASK_FLAGS
	StringHash string `mapstructure:"string_hash" toml:"string_hash"` // provides enums::Key and the lookup primitives
}

// FormatterConfig configures the best-effort external formatter
type FormatterConfig struct {
	Enabled        bool   `mapstructure:"enabled" toml:"enabled"`
	Command        string `mapstructure:"command" toml:"command"`                 // split with shell quoting rules, file appended
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds"` // per file
}

// Module types whose public header carries the export macro
const (
	ModuleTypeLib = "lib"
	ModuleTypeRef = "ref"
)

// Coding styles accepted by generator.coding_style
const (
	StyleUpperCamelCase = "upper-camel-case"
	StyleLowerCamelCase = "lower-camel-case"
	StyleSnakeCase      = "snake-case"
)

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// ExportsAPI reports whether the module's public header marks structs with the export macro
func (m ModuleConfig) ExportsAPI() bool {
	return m.Type == ModuleTypeLib || m.Type == ModuleTypeRef
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Module: %s (%s), Namespace: %s, Style: %s, Formatter: %t}",
		c.Module.Name, c.Module.Type, c.Generator.RootNamespace, c.Generator.CodingStyle, c.Formatter.Enabled)
}
