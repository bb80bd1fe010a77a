package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "shapegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.ErrorIs(t, cfg.Check(), ErrNoInput)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
namespace: acme
root_name: Event
manifest: schemas/subset.txt
strict: false
list_overrides:
  http:
    - request.headers
output:
  smithy: out/model.json
  go: out/model_gen.go
  go_package: model
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "acme", cfg.Namespace)
	assert.Equal(t, "Event", cfg.RootName)
	assert.False(t, cfg.Strict)
	assert.True(t, cfg.Validate)
	assert.Equal(t, map[string][]string{"http": {"request.headers"}}, cfg.ListOverrides)
	assert.Equal(t, "out/model.json", cfg.Output.Smithy)
	assert.Equal(t, "model", cfg.Output.GoPackage)
	assert.Equal(t, "1.0.0", cfg.Output.OpenAPIVersion)
	require.NoError(t, cfg.Check())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestPrecedence(t *testing.T) {
	path := writeConfig(t, "namespace: fromfile\nschema_dir: schemas\nlog_level: warn\n")
	t.Setenv("ECS_SHAPEGEN_NAMESPACE", "fromenv")
	t.Setenv("ECS_SHAPEGEN_OUTPUT_YAML", "env.yaml")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.String("namespace", "ecs", "")
	require.NoError(t, flags.Parse([]string{"--log-level=debug"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "fromenv", cfg.Namespace)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "env.yaml", cfg.Output.YAML)
	assert.Equal(t, "schemas", cfg.SchemaDir)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "manifest", mutate: func(c *Config) { c.Manifest = "m.txt" }},
		{name: "schema dir", mutate: func(c *Config) { c.SchemaDir = "schemas" }},
		{
			name:    "both inputs",
			mutate:  func(c *Config) { c.Manifest, c.SchemaDir = "m.txt", "schemas" },
			wantErr: "mutually exclusive",
		},
		{
			name:    "empty namespace",
			mutate:  func(c *Config) { c.Manifest, c.Namespace = "m.txt", "" },
			wantErr: "namespace",
		},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Manifest, c.LogLevel = "m.txt", "loud" },
			wantErr: "log_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Check()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
