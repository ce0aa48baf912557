// Package config provides Viper-based configuration loading for the card
// forge binaries.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// RandomSeed is the seed value that asks for a freshly drawn seed.
const RandomSeed = "random"

// GeneratorConfig holds card generation settings.
type GeneratorConfig struct {
	// Seed is an integer, any other string, or RandomSeed.
	Seed string `mapstructure:"seed"`
	// OutDir is the directory the output files are written to.
	OutDir string `mapstructure:"out_dir"`
	// Counts overrides the per-faction card counts. Keys match faction
	// names case-insensitively; non-positive or non-integer values are ignored.
	Counts map[string]any `mapstructure:"counts"`
	// CountsFile is an optional JSON or YAML counts file applied over Counts.
	CountsFile string `mapstructure:"counts_file"`
	// AbilitiesFile replaces the embedded ability library when set.
	AbilitiesFile string `mapstructure:"abilities_file"`
	// TemplatesDir replaces the embedded flavour templates when set.
	TemplatesDir string `mapstructure:"templates_dir"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is where log lines go: "stderr" or "stdout".
	Output string `mapstructure:"output"`
}

// ServerConfig holds the static preview server settings.
type ServerConfig struct {
	// Host is the bind address.
	Host string `mapstructure:"host"`
	// Port is the TCP port.
	Port int `mapstructure:"port"`
	// Root is the directory files are served from.
	Root string `mapstructure:"root"`
	// Index is the request path served in place of "/".
	Index string `mapstructure:"index"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Config is the top-level application configuration.
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Server    ServerConfig    `mapstructure:"server"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGenerator(c.Generator); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateServer(c.Server); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGenerator(g GeneratorConfig) error {
	var errs []string
	if strings.TrimSpace(g.Seed) == "" {
		errs = append(errs, "generator.seed must not be empty")
	}
	if g.OutDir == "" {
		errs = append(errs, "generator.out_dir must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	validOutputs := map[string]bool{"stderr": true, "stdout": true}
	if !validOutputs[l.Output] {
		errs = append(errs, fmt.Sprintf("logging.output must be one of [stderr, stdout], got %q", l.Output))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateServer(s ServerConfig) error {
	var errs []string
	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", s.Port))
	}
	if s.Root == "" {
		errs = append(errs, "server.root must not be empty")
	}
	if !strings.HasPrefix(s.Index, "/") || s.Index == "/" {
		errs = append(errs, fmt.Sprintf("server.index must be an absolute request path, got %q", s.Index))
	}
	if s.ShutdownTimeout < 0 {
		errs = append(errs, "server.shutdown_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path skips the file
// and uses defaults plus environment only.
//
// Precondition: path must be empty or name a readable YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with CARDFORGE_ prefix
	v.SetEnvPrefix("CARDFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration Load produces with no file and no
// environment overrides.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults are static and always decode.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("generator.seed", "1337")
	v.SetDefault("generator.out_dir", "data")
	v.SetDefault("generator.counts", map[string]any{})
	v.SetDefault("generator.counts_file", "")
	v.SetDefault("generator.abilities_file", "")
	v.SetDefault("generator.templates_dir", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8787)
	v.SetDefault("server.root", ".")
	v.SetDefault("server.index", "/web/index.html")
	v.SetDefault("server.shutdown_timeout", "5s")
}
