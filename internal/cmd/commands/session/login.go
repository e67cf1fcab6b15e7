package session

import (
	"errors"

	"github.com/hashicorp-forge/ikos/internal/cmd/base"
	"github.com/hashicorp-forge/ikos/internal/config"
	"github.com/hashicorp-forge/ikos/pkg/ikos/auth"
)

type LoginCommand struct {
	*base.Command

	flagTempKey      bool
	flagReturnURL    string
	flagMulti        bool
	flagKeepSessions bool
}

func (c *LoginCommand) Synopsis() string {
	return "Log in and print the session response"
}

func (c *LoginCommand) Help() string {
	return `Usage: ikos login [options]

  Logs in to the platform. The password is read from ` + config.EnvPassword + `
  (or a .env file) and is hashed before it is sent.` + c.Flags().Help()
}

func (c *LoginCommand) Flags() *base.FlagSet {
	f := c.NewFlagSet("login")

	f.StringVar(
		&c.UsernameOverride, "username", "",
		"["+config.EnvUsername+"] User to log in as",
	)
	f.BoolVar(
		&c.flagTempKey, "temp-key", false,
		"Ask the platform for a temporary API key",
	)
	f.StringVar(
		&c.flagReturnURL, "return-url", "",
		"Return URL for the redirect login flow",
	)
	f.BoolVar(
		&c.flagMulti, "multi", false,
		"Allow concurrent sessions for this user (admin only)",
	)
	f.BoolVar(
		&c.flagKeepSessions, "keep-sessions", false,
		"Do not log out the user's other sessions",
	)

	return f
}

func (c *LoginCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return c.Error("parsing flags", err)
	}

	cfg, err := c.Config()
	if err != nil {
		return c.Error("loading configuration", err)
	}

	username := cfg.Username
	if username == "" {
		return c.Error("logging in", errors.New("a username is required (-username or "+config.EnvUsername+")"))
	}
	if cfg.Password == "" {
		return c.Error("logging in", errors.New(config.EnvPassword+" is not set"))
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, err := c.Client(ctx, false)
	if err != nil {
		return c.Error("creating client", err)
	}

	opts := auth.LoginOptions{
		ReturnTempKey: c.flagTempKey,
		ReturnURL:     c.flagReturnURL,
		MultiLogin:    c.flagMulti,
	}
	if c.flagKeepSessions {
		override := false
		opts.Override = &override
	}

	resp, err := auth.New(client).Login(ctx, username, cfg.Password, opts)
	if err != nil {
		return c.Error("logging in", err)
	}

	if err := c.Output(resp); err != nil {
		return c.Error("writing output", err)
	}
	return 0
}
