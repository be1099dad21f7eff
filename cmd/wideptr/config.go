package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/wideptr/wideptr/internal/generator/codegen"
)

// Config represents the wideptr configuration, read from an optional
// wideptr.yml next to the package being generated.
type Config struct {
	// Output is the name of the generated file inside the target package.
	Output string `mapstructure:"output"`
	// JSON switches diagnostics to machine-readable JSON.
	JSON bool `mapstructure:"json"`
	// Verbose enables phase tracing during scanning and emission.
	Verbose bool `mapstructure:"verbose"`
}

// loadConfig loads wideptr.yml if present, applying defaults and
// environment overrides (WIDEPTR_OUTPUT and friends).
func loadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("output", codegen.DefaultOutput)
	v.SetDefault("json", false)
	v.SetDefault("verbose", false)

	v.SetConfigName("wideptr")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("WIDEPTR")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if !strings.HasSuffix(config.Output, ".go") {
		return nil, fmt.Errorf("output file %q must end in .go", config.Output)
	}
	if strings.ContainsAny(config.Output, "/\\") {
		return nil, fmt.Errorf("output file %q must be a bare file name", config.Output)
	}

	return &config, nil
}
