// Package config loads the ikos CLI configuration from an HCL file, a .env
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/ikos/pkg/ikos"
)

// Environment variables that override the configuration file.
const (
	EnvBaseURL  = "IKOS_BASE_URL"
	EnvUsername = "IKOS_USERNAME"
	EnvPassword = "IKOS_PASSWORD"
	EnvLogLevel = "IKOS_LOG_LEVEL"
)

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// DefaultDotEnvFile is read from the working directory when present.
const DefaultDotEnvFile = ".env"

// Config is the CLI configuration.
type Config struct {
	// Platform configures the API connection.
	Platform *Platform `hcl:"platform,block"`

	// Timeout bounds each request, e.g. "30s". Empty means no timeout.
	Timeout string `hcl:"timeout,optional"`

	// Username logs in before each command when set.
	Username string `hcl:"username,optional"`

	// Password is only read from the environment.
	Password string

	// Output is the output format, "json" or "yaml".
	Output string `hcl:"output,optional"`

	// LogLevel is the hclog level name.
	LogLevel string `hcl:"log_level,optional"`
}

// Platform is the platform block.
type Platform struct {
	BaseURL   string `hcl:"base_url,optional"`
	TLSVerify *bool  `hcl:"tls_verify,optional"`
	UserAgent string `hcl:"user_agent,optional"`
}

// Default returns a configuration with default values.
func Default() *Config {
	tlsVerify := true
	return &Config{
		Platform: &Platform{
			BaseURL:   ikos.DefaultBaseURL,
			TLSVerify: &tlsVerify,
			UserAgent: "ikos-cli",
		},
		Output:   OutputJSON,
		LogLevel: "warn",
	}
}

// Load reads the HCL file at path from fsys. An empty path returns Default.
// Unset values are filled from Default.
func Load(fsys afero.Fs, path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	src, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("error reading configuration file: %w", err)
	}

	var cfg Config
	if err := hclsimple.Decode(decodeName(path), src, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	cfg.setDefaults()

	return &cfg, nil
}

// decodeName returns a file name hclsimple will accept. Anything that is not
// JSON is parsed as native HCL syntax.
func decodeName(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl", ".json":
		return path
	default:
		return path + ".hcl"
	}
}

func (c *Config) setDefaults() {
	def := Default()
	if c.Platform == nil {
		c.Platform = def.Platform
	}
	if c.Platform.BaseURL == "" {
		c.Platform.BaseURL = def.Platform.BaseURL
	}
	if c.Platform.TLSVerify == nil {
		c.Platform.TLSVerify = def.Platform.TLSVerify
	}
	if c.Platform.UserAgent == "" {
		c.Platform.UserAgent = def.Platform.UserAgent
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// ReadDotEnv parses a .env file from fsys. A missing file yields an empty
// map.
func ReadDotEnv(fsys afero.Fs, path string) (map[string]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return vars, nil
}

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// WithDotEnv returns a LookupFunc that tries lookup first and falls back to
// vars, so real environment variables win over the .env file.
func WithDotEnv(lookup LookupFunc, vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}
}

// ApplyEnv overrides c with the IKOS_* environment variables found by lookup.
func (c *Config) ApplyEnv(lookup LookupFunc) {
	if c.Platform == nil {
		c.Platform = Default().Platform
	}
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.Platform.BaseURL = v
	}
	if v, ok := lookup(EnvUsername); ok && v != "" {
		c.Username = v
	}
	if v, ok := lookup(EnvPassword); ok {
		c.Password = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// TimeoutDuration parses Timeout. Empty means zero.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// Validate checks the whole configuration and reports every problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Platform == nil || c.Platform.BaseURL == "" {
		result = multierror.Append(result, errors.New("platform.base_url is required"))
	} else if !strings.HasSuffix(c.Platform.BaseURL, "/") {
		result = multierror.Append(result, fmt.Errorf("platform.base_url must end with \"/\": %s", c.Platform.BaseURL))
	}

	if d, err := c.TimeoutDuration(); err != nil {
		result = multierror.Append(result, err)
	} else if d < 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must not be negative: %s", c.Timeout))
	}

	switch c.Output {
	case OutputJSON, OutputYAML:
	default:
		result = multierror.Append(result, fmt.Errorf("output must be %q or %q: %s", OutputJSON, OutputYAML, c.Output))
	}

	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("invalid log_level: %s", c.LogLevel))
	}

	if c.Password != "" && c.Username == "" {
		result = multierror.Append(result, fmt.Errorf("%s is set but no username is configured", EnvPassword))
	}

	return result.ErrorOrNil()
}

// HasCredentials reports whether the CLI should log in before a command.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// ClientConfig converts c into the API client configuration.
func (c *Config) ClientConfig(logger hclog.Logger) (*ikos.Config, error) {
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	cfg := ikos.DefaultConfig()
	cfg.Timeout = timeout
	cfg.Logger = logger
	if c.Platform != nil {
		cfg.BaseURL = c.Platform.BaseURL
		cfg.UserAgent = c.Platform.UserAgent
		if c.Platform.TLSVerify != nil {
			cfg.TLSVerify = c.Platform.TLSVerify
		}
	}
	return cfg, nil
}
