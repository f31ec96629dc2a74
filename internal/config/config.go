// Package config loads the geoadmin configuration: built-in defaults,
// then an optional YAML file, then GEOADMIN_* environment variables.
// Command-line flags are applied by the caller on top.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm/geoadmin/internal/api"
)

var ErrInvalid = errors.New("invalid configuration")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Environment variables that override the file.
const (
	EnvListen     = "GEOADMIN_LISTEN"
	EnvBackendURL = "GEOADMIN_BACKEND_URL"
	EnvPropsKey   = "GEOADMIN_PROPS_KEY"
	EnvLogLevel   = "GEOADMIN_LOG_LEVEL"
)

type Config struct {
	Listen   string  `yaml:"listen"`
	PropsKey string  `yaml:"props_key"`
	Backend  Backend `yaml:"backend"`
	Log      Log     `yaml:"log"`
}

type Backend struct {
	BaseURL        string        `yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	UpdateEncoding string        `yaml:"update_encoding"`
}

type Log struct {
	Level string `yaml:"level"`
	// Path is a file to append to. Empty means stdout.
	Path string `yaml:"path"`
}

func Default() *Config {
	return &Config{
		Listen: ":3000",
		Backend: Backend{
			BaseURL:        "http://localhost:8080",
			Timeout:        api.DefaultTimeout,
			UpdateEncoding: string(api.EncodingQuery),
		},
		Log: Log{Level: "info"},
	}
}

// Load reads the file at path over the defaults. An empty path skips the
// file; a named file that cannot be read is an error.
func Load(path string) (*Config, error) {
	conf := Default()
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := conf.unmarshal(content); err != nil {
			return nil, err
		}
	}
	conf.applyEnv(os.LookupEnv)
	return conf, nil
}

// Unmarshal parses conf over the defaults, without consulting the
// environment.
func Unmarshal(content []byte) (*Config, error) {
	conf := Default()
	if err := conf.unmarshal(content); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) unmarshal(content []byte) error {
	if err := yaml.Unmarshal(content, c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvListen, &c.Listen)
	set(EnvBackendURL, &c.Backend.BaseURL)
	set(EnvPropsKey, &c.PropsKey)
	set(EnvLogLevel, &c.Log.Level)
}

// Verify checks the values that would otherwise fail later, at the first
// request.
func (c *Config) Verify() error {
	if c.Listen == "" {
		return invalid("listen address is empty")
	}

	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return invalid("backend.base_url %q is not an absolute URL", c.Backend.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid("backend.base_url %q: scheme must be http or https", c.Backend.BaseURL)
	}

	if c.Backend.Timeout < 0 {
		return invalid("backend.timeout must not be negative")
	}
	if _, err := api.ParseUpdateEncoding(c.Backend.UpdateEncoding); err != nil {
		return invalid("backend.update_encoding: %v", err)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	return nil
}
