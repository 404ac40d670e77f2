package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/polyrecon/xlogger"
)

const (
	FormatText = "text"
	FormatJSON = "json"

	// EnvPrefix is the prefix of every environment override, e.g. POLYRECON_WORKERS.
	EnvPrefix = "POLYRECON"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config drives a single reconstruction run.
type Config struct {
	// Input is the path of the JSON document with the encoded samples.
	Input string `yaml:"input" json:"input"`
	// Format selects the output: "text" or "json".
	Format string `yaml:"format" json:"format"`
	// Strict enforces the n/k metadata of the input document.
	Strict bool `yaml:"strict" json:"strict"`
	// Workers bounds concurrent per-sample work; 0 or 1 runs sequentially.
	Workers int `yaml:"workers" json:"workers"`

	Logger xlogger.Config `yaml:"logger" json:"logger"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Input:   "input.json",
		Format:  FormatText,
		Strict:  true,
		Workers: 1,
		Logger: xlogger.Config{
			Level:   "info",
			LogType: "text",
		},
	}
}

type options struct {
	files     []string
	envPrefix string
	lookup    func(string) (string, bool)
}

type Option func(*options)

// WithFiles layers the given YAML or JSON files, in order, over the defaults.
func WithFiles(filenames ...string) Option {
	return func(o *options) {
		o.files = append(o.files, filenames...)
	}
}

// WithEnv applies PREFIX_* environment variables after the files.
func WithEnv(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithLookup replaces os.LookupEnv as the environment source.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(o *options) {
		o.lookup = lookup
	}
}

// Load builds a Config from defaults, then files, then environment, and validates it.
func Load(opts ...Option) (Config, error) {
	o := &options{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(o)
	}

	conf := Default()

	for _, filename := range o.files {
		if err := loadFromFile(&conf, filename); err != nil {
			return Config{}, fmt.Errorf("failed to load file %s: %w", filename, err)
		}
	}

	if o.envPrefix != "" {
		if err := loadFromEnv(&conf, o.envPrefix, o.lookup); err != nil {
			return Config{}, fmt.Errorf("failed to load from environment: %w", err)
		}
	}

	if err := conf.Validate(); err != nil {
		return Config{}, err
	}

	return conf, nil
}

// Validate rejects values no run could use.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}

	if c.Logger.Level != "" && !xlogger.ValidLevel(c.Logger.Level) {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logger.Level)
	}

	return nil
}

func loadFromFile(conf *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		return dec.Decode(conf)

	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(conf)

	default:
		return fmt.Errorf("unsupported file extension %s for file %s", ext, filename)
	}
}

type envBinding struct {
	name  string
	apply func(conf *Config, value string) error
}

var envBindings = []envBinding{
	{"INPUT", func(c *Config, v string) error { c.Input = v; return nil }},
	{"FORMAT", func(c *Config, v string) error { c.Format = strings.ToLower(v); return nil }},
	{"STRICT", func(c *Config, v string) (err error) { c.Strict, err = strconv.ParseBool(v); return }},
	{"WORKERS", func(c *Config, v string) (err error) { c.Workers, err = strconv.Atoi(v); return }},
	{"LOG_LEVEL", func(c *Config, v string) error { c.Logger.Level = v; return nil }},
	{"LOG_TYPE", func(c *Config, v string) error { c.Logger.LogType = v; return nil }},
	{"LOG_ADD_SOURCE", func(c *Config, v string) (err error) { c.Logger.AddSource, err = strconv.ParseBool(v); return }},
}

func loadFromEnv(conf *Config, prefix string, lookup func(string) (string, bool)) error {
	for _, b := range envBindings {
		key := prefix + "_" + b.name

		value, ok := lookup(key)
		if !ok || value == "" {
			continue
		}

		if err := b.apply(conf, value); err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
		}
	}

	return nil
}
