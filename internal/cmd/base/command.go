// Package base holds the state and helpers shared by every ikos command.
package base

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/ikos/internal/config"
	"github.com/hashicorp-forge/ikos/pkg/ikos"
	"github.com/hashicorp-forge/ikos/pkg/ikos/auth"
)

// Command is embedded by every command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs is where the configuration, .env and upload files are read from.
	Fs afero.Fs

	// LookupEnv reads environment variables.
	LookupEnv config.LookupFunc

	// UsernameOverride replaces the configured username when set. Commands
	// bind their -username flag to it.
	UsernameOverride string

	flagConfig string
	flagFormat string

	cfg *config.Config
}

// New returns a Command reading from the OS filesystem and environment.
func New(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log:       log,
		UI:        ui,
		Fs:        afero.NewOsFs(),
		LookupEnv: os.LookupEnv,
	}
}

// NewFlagSet returns a flag set carrying the flags every API command
// accepts.
func (c *Command) NewFlagSet(name string) *FlagSet {
	f := NewFlagSet(flag.NewFlagSet(name, flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to an HCL configuration file",
	)
	f.StringVar(
		&c.flagFormat, "format", "",
		"Output format: json or yaml (defaults to the configured output)",
	)

	return f
}

// Context returns a context that is cancelled on interrupt.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// Config loads and validates the configuration once per command run.
func (c *Command) Config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	cfg, err := config.Load(c.Fs, c.flagConfig)
	if err != nil {
		return nil, err
	}

	vars, err := config.ReadDotEnv(c.Fs, config.DefaultDotEnvFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(config.WithDotEnv(c.LookupEnv, vars))

	if c.flagFormat != "" {
		cfg.Output = c.flagFormat
	}
	if c.UsernameOverride != "" {
		cfg.Username = c.UsernameOverride
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c.Log.SetLevel(hclog.LevelFromString(cfg.LogLevel))
	c.cfg = cfg
	return cfg, nil
}

// Client builds an API client from the configuration. When login is true
// and credentials are configured, it logs in first so the session cookie is
// sent on every later call made with the returned client.
func (c *Command) Client(ctx context.Context, login bool) (*ikos.Client, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}

	clientCfg, err := cfg.ClientConfig(c.Log)
	if err != nil {
		return nil, err
	}

	client, err := ikos.New(clientCfg)
	if err != nil {
		return nil, err
	}

	if login && cfg.HasCredentials() {
		c.Log.Debug("logging in", "username", cfg.Username)
		if _, err := auth.New(client).Login(ctx, cfg.Username, cfg.Password, auth.LoginOptions{}); err != nil {
			return nil, fmt.Errorf("error logging in as %s: %w", cfg.Username, err)
		}
	}

	return client, nil
}

// Output writes v to the UI in the configured format.
func (c *Command) Output(v any) error {
	format := config.OutputJSON
	if c.cfg != nil {
		format = c.cfg.Output
	}

	var (
		b   []byte
		err error
	)
	switch format {
	case config.OutputYAML:
		b, err = yaml.Marshal(v)
	default:
		b, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}

	c.UI.Output(strings.TrimRight(string(b), "\n"))
	return nil
}

// Error reports err on the UI and returns the exit code for a failed run.
func (c *Command) Error(action string, err error) int {
	c.Log.Debug("command failed", "action", action, "error", err)
	c.UI.Error(fmt.Sprintf("error %s: %v", action, err))
	return 1
}
