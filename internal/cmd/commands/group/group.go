package group

import (
	"context"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/ikos/internal/cmd/base"
	"github.com/hashicorp-forge/ikos/pkg/ikos"
	"github.com/hashicorp-forge/ikos/pkg/ikos/social/group"
)

type Command struct {
	*base.Command
}

// Commands returns the factories for "group" and its subcommands.
func Commands(b *base.Command) map[string]cli.CommandFactory {
	sub := func() groupCommand { return groupCommand{Command: b} }

	return map[string]cli.CommandFactory{
		"group": func() (cli.Command, error) {
			return &Command{Command: b}, nil
		},
		"group list": func() (cli.Command, error) {
			return &ListCommand{groupCommand: sub()}, nil
		},
		"group get": func() (cli.Command, error) {
			return &GetCommand{groupCommand: sub()}, nil
		},
		"group add": func() (cli.Command, error) {
			return &AddCommand{groupCommand: sub()}, nil
		},
		"group update": func() (cli.Command, error) {
			return &UpdateCommand{groupCommand: sub()}, nil
		},
		"group remove": func() (cli.Command, error) {
			return &RemoveCommand{groupCommand: sub()}, nil
		},
		"group add-members": func() (cli.Command, error) {
			return &AddMembersCommand{groupCommand: sub()}, nil
		},
		"group remove-members": func() (cli.Command, error) {
			return &RemoveMembersCommand{groupCommand: sub()}, nil
		},
	}
}

func (c *Command) Synopsis() string {
	return "Manage data and user groups"
}

func (c *Command) Help() string {
	return `Usage: ikos group <subcommand> [options] [args]

  This command groups subcommands for managing data groups and user groups.
  Every subcommand takes -type=data|user (default data).`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// groupCommand carries the -type flag shared by every group subcommand.
type groupCommand struct {
	*base.Command

	flagType string
}

func (c *groupCommand) flags(name string) *base.FlagSet {
	f := c.NewFlagSet("group " + name)

	f.StringVar(
		&c.flagType, "type", group.Data.String(),
		"Group type: data or user",
	)

	return f
}

// run parses args and calls fn with a logged-in group service. nArgs is the
// exact number of positional arguments, or the negated minimum when below
// zero.
func (c *groupCommand) run(f *base.FlagSet, args []string, nArgs int, usage string, fn func(ctx context.Context, svc *group.Service, args []string) (any, error)) int {
	if err := f.Parse(args); err != nil {
		return c.Error("parsing flags", err)
	}
	if nArgs >= 0 && f.NArg() != nArgs || nArgs < 0 && f.NArg() < -nArgs {
		c.UI.Error(fmt.Sprintf("usage: %s", usage))
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, err := c.Client(ctx, true)
	if err != nil {
		return c.Error("creating client", err)
	}

	out, err := fn(ctx, group.New(client, group.ParseGroupType(c.flagType)), f.Args())
	if err != nil {
		return c.Error("calling group api", err)
	}

	if err := c.Output(out); err != nil {
		return c.Error("writing output", err)
	}
	return 0
}

type ListCommand struct {
	groupCommand
}

func (c *ListCommand) Synopsis() string { return "List groups" }

func (c *ListCommand) Help() string {
	return `Usage: ikos group list [options]` + c.flags("list").Help()
}

func (c *ListCommand) Run(args []string) int {
	return c.run(c.flags("list"), args, 0, "ikos group list [options]",
		func(ctx context.Context, svc *group.Service, _ []string) (any, error) {
			resp, err := svc.GetAll(ctx)
			if err != nil {
				return nil, err
			}
			return ikos.ResolveWithDataOrArray(resp)
		})
}

type GetCommand struct {
	groupCommand
}

func (c *GetCommand) Synopsis() string { return "Show a group" }

func (c *GetCommand) Help() string {
	return `Usage: ikos group get [options] <id>` + c.flags("get").Help()
}

func (c *GetCommand) Run(args []string) int {
	return c.run(c.flags("get"), args, 1, "ikos group get [options] <id>",
		func(ctx context.Context, svc *group.Service, args []string) (any, error) {
			resp, err := svc.Get(ctx, args[0])
			if err != nil {
				return nil, err
			}
			return ikos.ResolveWithDataOrObject(resp)
		})
}

type AddCommand struct {
	groupCommand

	flagDescription string
	flagTags        []string
	flagParent      string
}

func (c *AddCommand) Synopsis() string { return "Create a group" }

func (c *AddCommand) Help() string {
	return `Usage: ikos group add [options] <name>

  Creates a group and prints its id. At least one tag is required.` + c.Flags().Help()
}

func (c *AddCommand) Flags() *base.FlagSet {
	f := c.flags("add")

	f.StringVar(
		&c.flagDescription, "description", "",
		"Group description",
	)
	f.StringSliceVar(
		&c.flagTags, "tags",
		"Comma-separated tags (required)",
	)
	f.StringVar(
		&c.flagParent, "parent", "",
		"Parent group id",
	)

	return f
}

func (c *AddCommand) Run(args []string) int {
	return c.run(c.Flags(), args, 1, "ikos group add [options] <name>",
		func(ctx context.Context, svc *group.Service, args []string) (any, error) {
			resp, err := svc.Add(ctx, args[0], c.flagDescription, c.flagTags, c.flagParent)
			if err != nil {
				return nil, err
			}
			id, err := ikos.ResolveWithDataID(resp)
			if err != nil {
				return nil, err
			}
			return map[string]any{"_id": id}, nil
		})
}

type UpdateCommand struct {
	groupCommand

	flagData string
}

func (c *UpdateCommand) Synopsis() string { return "Replace a group" }

func (c *UpdateCommand) Help() string {
	return `Usage: ikos group update [options] -data=<json>

  Replaces a group. The JSON object must carry the group's "_id".` + c.Flags().Help()
}

func (c *UpdateCommand) Flags() *base.FlagSet {
	f := c.flags("update")

	f.StringVar(
		&c.flagData, "data", "",
		"Group object as JSON",
	)

	return f
}

func (c *UpdateCommand) Run(args []string) int {
	return c.run(c.Flags(), args, 0, "ikos group update [options] -data=<json>",
		func(ctx context.Context, svc *group.Service, _ []string) (any, error) {
			obj, err := base.ParseJSONObject("data", c.flagData)
			if err != nil {
				return nil, err
			}
			resp, err := svc.Update(ctx, obj)
			if err != nil {
				return nil, err
			}
			return ikos.ResolveWithDataOrObject(resp)
		})
}

type RemoveCommand struct {
	groupCommand
}

func (c *RemoveCommand) Synopsis() string { return "Delete a group" }

func (c *RemoveCommand) Help() string {
	return `Usage: ikos group remove [options] <id>` + c.flags("remove").Help()
}

func (c *RemoveCommand) Run(args []string) int {
	return c.run(c.flags("remove"), args, 1, "ikos group remove [options] <id>",
		func(ctx context.Context, svc *group.Service, args []string) (any, error) {
			resp, err := svc.Remove(ctx, args[0])
			if err != nil {
				return nil, err
			}
			return ikos.DecodeResponseMeta(resp)
		})
}

type AddMembersCommand struct {
	groupCommand
}

func (c *AddMembersCommand) Synopsis() string { return "Add members to a group" }

func (c *AddMembersCommand) Help() string {
	return `Usage: ikos group add-members [options] <id> <member-id>...

  Adds members and prints the full response, which lists per-member
  results even when some of them failed.` + c.flags("add-members").Help()
}

func (c *AddMembersCommand) Run(args []string) int {
	return c.run(c.flags("add-members"), args, -2, "ikos group add-members [options] <id> <member-id>...",
		func(ctx context.Context, svc *group.Service, args []string) (any, error) {
			return svc.AddMembers(ctx, args[0], args[1:])
		})
}

type RemoveMembersCommand struct {
	groupCommand
}

func (c *RemoveMembersCommand) Synopsis() string { return "Remove members from a group" }

func (c *RemoveMembersCommand) Help() string {
	return `Usage: ikos group remove-members [options] <id> <member-id>...` + c.flags("remove-members").Help()
}

func (c *RemoveMembersCommand) Run(args []string) int {
	return c.run(c.flags("remove-members"), args, -2, "ikos group remove-members [options] <id> <member-id>...",
		func(ctx context.Context, svc *group.Service, args []string) (any, error) {
			return svc.RemoveMembers(ctx, args[0], args[1:])
		})
}
