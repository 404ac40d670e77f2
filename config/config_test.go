package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	conf, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)
	assert.Equal(t, "input.json", conf.Input)
	assert.True(t, conf.Strict)
}

func TestLoadFiles(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "polyrecon.yaml", `
input: testcase2.json
format: json
workers: 4
logger:
  level: debug
  type: json
`)

		conf, err := Load(WithFiles(path))
		require.NoError(t, err)

		assert.Equal(t, "testcase2.json", conf.Input)
		assert.Equal(t, FormatJSON, conf.Format)
		assert.Equal(t, 4, conf.Workers)
		assert.True(t, conf.Strict)
		assert.Equal(t, "debug", conf.Logger.Level)
		assert.Equal(t, "json", conf.Logger.LogType)
	})

	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "polyrecon.json", `{"strict": false, "workers": 2}`)

		conf, err := Load(WithFiles(path))
		require.NoError(t, err)
		assert.False(t, conf.Strict)
		assert.Equal(t, 2, conf.Workers)
		assert.Equal(t, FormatText, conf.Format)
	})

	t.Run("later files win", func(t *testing.T) {
		first := writeFile(t, "a.yml", "workers: 2\nformat: json\n")
		second := writeFile(t, "b.yml", "workers: 8\n")

		conf, err := Load(WithFiles(first, second))
		require.NoError(t, err)
		assert.Equal(t, 8, conf.Workers)
		assert.Equal(t, FormatJSON, conf.Format)
	})

	t.Run("unknown field", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "wrokers: 2\n")
		_, err := Load(WithFiles(path))
		assert.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "conf.toml", "workers = 2\n")
		_, err := Load(WithFiles(path))
		assert.ErrorContains(t, err, "unsupported file extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(WithFiles(filepath.Join(t.TempDir(), "nope.yaml")))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, "polyrecon.yaml", "workers: 2\nformat: json\n")

	conf, err := Load(
		WithFiles(path),
		WithEnv(EnvPrefix),
		WithLookup(envMap(map[string]string{
			"POLYRECON_WORKERS":   "6",
			"POLYRECON_STRICT":    "false",
			"POLYRECON_LOG_LEVEL": "warn",
			"POLYRECON_INPUT":     "",
		})),
	)
	require.NoError(t, err)

	assert.Equal(t, 6, conf.Workers)
	assert.False(t, conf.Strict)
	assert.Equal(t, FormatJSON, conf.Format)
	assert.Equal(t, "warn", conf.Logger.Level)
	assert.Equal(t, "input.json", conf.Input)

	t.Run("process environment", func(t *testing.T) {
		t.Setenv("POLYRECON_FORMAT", "JSON")

		conf, err := Load(WithEnv(EnvPrefix))
		require.NoError(t, err)
		assert.Equal(t, FormatJSON, conf.Format)
	})

	t.Run("bad value", func(t *testing.T) {
		_, err := Load(WithEnv(EnvPrefix), WithLookup(envMap(map[string]string{"POLYRECON_WORKERS": "many"})))
		assert.ErrorContains(t, err, "POLYRECON_WORKERS")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"json format", func(c *Config) { c.Format = FormatJSON }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"empty log level", func(c *Config) { c.Logger.Level = "" }, true},
		{"unknown format", func(c *Config) { c.Format = "xml" }, false},
		{"negative workers", func(c *Config) { c.Workers = -1 }, false},
		{"unknown log level", func(c *Config) { c.Logger.Level = "trace" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := Default()
			tt.mutate(&conf)

			err := conf.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}
