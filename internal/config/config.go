// Package config loads ecs-shapegen settings from defaults, an optional
// config file, ECS_SHAPEGEN_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables, e.g. ECS_SHAPEGEN_NAMESPACE.
const EnvPrefix = "ECS_SHAPEGEN"

// ErrNoInput is returned when neither a manifest nor a schema directory is set.
var ErrNoInput = errors.New("either manifest or schema_dir must be set")

// Config holds every setting of a run.
type Config struct {
	Namespace string `mapstructure:"namespace"`
	RootName  string `mapstructure:"root_name"`
	Manifest  string `mapstructure:"manifest"`
	SchemaDir string `mapstructure:"schema_dir"`
	// Strict fails on identifier collisions instead of overwriting.
	Strict      bool `mapstructure:"strict"`
	KnownFields bool `mapstructure:"known_fields"`
	Validate    bool `mapstructure:"validate"`
	// ListOverrides maps document names to dotted field paths wrapped in lists.
	// Viper lower-cases map keys, so document names are matched in lower case.
	ListOverrides map[string][]string `mapstructure:"list_overrides"`
	Output        Output              `mapstructure:"output"`
	MetricsFile   string              `mapstructure:"metrics_file"`
	LogLevel      string              `mapstructure:"log_level"`
}

// Output names the files a build writes. Empty paths are skipped.
type Output struct {
	Smithy         string `mapstructure:"smithy"`
	YAML           string `mapstructure:"yaml"`
	OpenAPI        string `mapstructure:"openapi"`
	OpenAPITitle   string `mapstructure:"openapi_title"`
	OpenAPIVersion string `mapstructure:"openapi_version"`
	Go             string `mapstructure:"go"`
	GoPackage      string `mapstructure:"go_package"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Namespace: "ecs",
		RootName:  "Record",
		Strict:    true,
		Validate:  true,
		Output: Output{
			OpenAPITitle:   "Record schema",
			OpenAPIVersion: "1.0.0",
			GoPackage:      "ecs",
		},
		LogLevel: "info",
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"namespace":       "namespace",
	"root-name":       "root_name",
	"manifest":        "manifest",
	"schema-dir":      "schema_dir",
	"strict":          "strict",
	"known-fields":    "known_fields",
	"validate":        "validate",
	"metrics-file":    "metrics_file",
	"log-level":       "log_level",
	"smithy-out":      "output.smithy",
	"yaml-out":        "output.yaml",
	"openapi-out":     "output.openapi",
	"openapi-title":   "output.openapi_title",
	"openapi-version": "output.openapi_version",
	"go-out":          "output.go",
	"go-package":      "output.go_package",
}

// Load resolves the configuration. path may be empty; flags may be nil.
// Only flags present in flags are bound.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("namespace", defaults.Namespace)
	v.SetDefault("root_name", defaults.RootName)
	v.SetDefault("manifest", "")
	v.SetDefault("schema_dir", "")
	v.SetDefault("strict", defaults.Strict)
	v.SetDefault("known_fields", defaults.KnownFields)
	v.SetDefault("validate", defaults.Validate)
	v.SetDefault("metrics_file", "")
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("output.smithy", "")
	v.SetDefault("output.yaml", "")
	v.SetDefault("output.openapi", "")
	v.SetDefault("output.openapi_title", defaults.Output.OpenAPITitle)
	v.SetDefault("output.openapi_version", defaults.Output.OpenAPIVersion)
	v.SetDefault("output.go", "")
	v.SetDefault("output.go_package", defaults.Output.GoPackage)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Check reports settings that cannot produce a run.
func (c *Config) Check() error {
	var errs []error

	if c.Namespace == "" {
		errs = append(errs, errors.New("namespace must not be empty"))
	}

	if c.Manifest == "" && c.SchemaDir == "" {
		errs = append(errs, ErrNoInput)
	}

	if c.Manifest != "" && c.SchemaDir != "" {
		errs = append(errs, errors.New("manifest and schema_dir are mutually exclusive"))
	}

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c *Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log_level: %w", err)
	}

	return lvl, nil
}
