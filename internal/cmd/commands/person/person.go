package person

import (
	"github.com/hashicorp-forge/ikos/internal/cmd/base"
	"github.com/hashicorp-forge/ikos/pkg/ikos"
	"github.com/hashicorp-forge/ikos/pkg/ikos/person"
)

type Command struct {
	*base.Command

	flagAlwaysResolve bool
}

func (c *Command) Synopsis() string {
	return "Show a user profile"
}

func (c *Command) Help() string {
	return `Usage: ikos person [options] [id]

  Prints the profile of the given user, or of the logged in user when no id
  is given.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := c.NewFlagSet("person")

	f.BoolVar(
		&c.flagAlwaysResolve, "always-resolve", false,
		"Print the full response even when the platform reports an error",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return c.Error("parsing flags", err)
	}
	if f.NArg() > 1 {
		c.UI.Error("expected at most one argument: the person id")
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, err := c.Client(ctx, true)
	if err != nil {
		return c.Error("creating client", err)
	}

	resp, err := person.New(client).Get(ctx, f.Arg(0), c.flagAlwaysResolve)
	if err != nil {
		return c.Error("getting person", err)
	}

	if c.flagAlwaysResolve {
		if err := c.Output(resp); err != nil {
			return c.Error("writing output", err)
		}
		return 0
	}

	data, err := ikos.ResolveWithData(resp)
	if err != nil {
		return c.Error("reading profile", err)
	}

	profile, err := person.DecodeProfile(data)
	if err != nil {
		return c.Error("reading profile", err)
	}
	if created, err := profile.CreatedAt(); err == nil && !created.IsZero() {
		c.Log.Debug("profile loaded", "id", profile.ID, "created", created)
	}

	if err := c.Output(data); err != nil {
		return c.Error("writing output", err)
	}
	return 0
}
