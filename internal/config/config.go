// Package config loads tool configuration from environment variables and an
// optional YAML file. Report vocabularies are compiled in (see
// internal/report); only ambient settings such as logging live here.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. FUNNEL_LOGGING_LEVEL=debug.
const envPrefix = "FUNNEL"

// configFileEnv names an optional YAML config file to merge.
const configFileEnv = "FUNNEL_CONFIG_FILE"

// Config represents the complete tool configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/funnel-report.log"`
}

var validate = validator.New()

// Load loads configuration from environment variables and, when
// FUNNEL_CONFIG_FILE points at an existing YAML file, merges that file's
// values underneath the environment.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := os.Getenv(configFileEnv); configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration used when Load is not viable,
// for example before the environment is trusted in tests.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/funnel-report.log",
		},
	}
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges the file configuration with the environment
// configuration. Environment values win when both are set; file values fill
// whatever the environment left at its default.
func mergeConfigs(file, env Config) Config {
	merged := env

	if file.Logging.Level != "" && env.Logging.Level == "info" {
		merged.Logging.Level = file.Logging.Level
	}
	if file.Logging.Output != "" && env.Logging.Output == "console" {
		merged.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" && env.Logging.FilePath == "logs/funnel-report.log" {
		merged.Logging.FilePath = file.Logging.FilePath
	}

	return merged
}
