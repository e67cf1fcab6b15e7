package session

import (
	"context"

	"github.com/hashicorp-forge/ikos/internal/cmd/base"
	"github.com/hashicorp-forge/ikos/pkg/ikos"
	"github.com/hashicorp-forge/ikos/pkg/ikos/auth"
)

type LogoutCommand struct {
	*base.Command
}

func (c *LogoutCommand) Synopsis() string {
	return "End the current session"
}

func (c *LogoutCommand) Help() string {
	return `Usage: ikos logout [options]

  Logs in when credentials are configured, then ends that session. The
  session cookie is kept in memory only, so a session started by an earlier
  ikos run cannot be ended this way.` + c.NewFlagSet("logout").Help()
}

func (c *LogoutCommand) Run(args []string) int {
	return runSessionCall(c.Command, "logout", args, func(ctx context.Context, svc *auth.Service) (ikos.Response, error) {
		return svc.Logout(ctx)
	})
}

type KeepAliveCommand struct {
	*base.Command
}

func (c *KeepAliveCommand) Synopsis() string {
	return "Refresh the current session"
}

func (c *KeepAliveCommand) Help() string {
	return `Usage: ikos keepalive [options]

  Logs in when credentials are configured, then refreshes the session.` + c.NewFlagSet("keepalive").Help()
}

func (c *KeepAliveCommand) Run(args []string) int {
	return runSessionCall(c.Command, "keepalive", args, func(ctx context.Context, svc *auth.Service) (ikos.Response, error) {
		return svc.KeepAlive(ctx)
	})
}

// runSessionCall runs one auth call and prints the response metadata.
func runSessionCall(c *base.Command, name string, args []string, call func(context.Context, *auth.Service) (ikos.Response, error)) int {
	f := c.NewFlagSet(name)
	if err := f.Parse(args); err != nil {
		return c.Error("parsing flags", err)
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, err := c.Client(ctx, true)
	if err != nil {
		return c.Error("creating client", err)
	}

	resp, err := call(ctx, auth.New(client))
	if err != nil {
		return c.Error("running "+name, err)
	}

	meta, err := ikos.DecodeResponseMeta(resp)
	if err != nil {
		return c.Error("reading response", err)
	}

	if err := c.Output(meta); err != nil {
		return c.Error("writing output", err)
	}
	return 0
}
