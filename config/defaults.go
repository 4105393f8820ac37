package config

import "github.com/spf13/viper"

// Default values shared by SetDefaults and Default
const (
	DefaultRootNamespace    = "lumiere"
	DefaultModuleType       = ModuleTypeLib
	DefaultSourceDir        = "."
	DefaultGenDir           = "gen"
	DefaultFormatterCommand = "clang-format -i -style=file"
	DefaultFlagTypeHeader   = "FlagType.hpp"
	DefaultStringHashHeader = "EnumStringHash.hpp"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("module.type", DefaultModuleType)
	v.SetDefault("module.source_dir", DefaultSourceDir)
	v.SetDefault("module.gen_dir", DefaultGenDir)

	v.SetDefault("generator.root_namespace", DefaultRootNamespace)
	v.SetDefault("generator.macro_prefix", "")
	v.SetDefault("generator.coding_style", StyleUpperCamelCase)
	v.SetDefault("generator.fmtlib", false)
	v.SetDefault("generator.workers", 0)

	v.SetDefault("headers.flag_type", DefaultFlagTypeHeader)
	v.SetDefault("headers.string_hash", DefaultStringHashHeader)

	v.SetDefault("formatter.enabled", true)
	v.SetDefault("formatter.command", DefaultFormatterCommand)
	v.SetDefault("formatter.timeout_seconds", 30)
}

// Default returns the configuration produced by SetDefaults alone
func Default() *Config {
	return &Config{
		Module: ModuleConfig{
			Type:      DefaultModuleType,
			SourceDir: DefaultSourceDir,
			GenDir:    DefaultGenDir,
		},
		Generator: GeneratorConfig{
			RootNamespace: DefaultRootNamespace,
			CodingStyle:   StyleUpperCamelCase,
		},
		Headers: HeadersConfig{
			FlagType:   DefaultFlagTypeHeader,
			StringHash: DefaultStringHashHeader,
		},
		Formatter: FormatterConfig{
			Enabled:        true,
			Command:        DefaultFormatterCommand,
			TimeoutSeconds: 30,
		},
	}
}
