package crud

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/ikos/internal/cmd/base"
	"github.com/hashicorp-forge/ikos/pkg/ikos"
	"github.com/hashicorp-forge/ikos/pkg/ikos/crud"
)

type Command struct {
	*base.Command
}

// Commands returns the factories for "crud" and its subcommands.
func Commands(b *base.Command) map[string]cli.CommandFactory {
	sub := func() crudCommand { return crudCommand{Command: b} }

	return map[string]cli.CommandFactory{
		"crud": func() (cli.Command, error) {
			return &Command{Command: b}, nil
		},
		"crud query": func() (cli.Command, error) {
			return &QueryCommand{crudCommand: sub()}, nil
		},
		"crud count": func() (cli.Command, error) {
			return &CountCommand{crudCommand: sub()}, nil
		},
		"crud get": func() (cli.Command, error) {
			return &GetCommand{crudCommand: sub()}, nil
		},
		"crud create": func() (cli.Command, error) {
			return &CreateCommand{crudCommand: sub()}, nil
		},
		"crud upload": func() (cli.Command, error) {
			return &UploadCommand{crudCommand: sub()}, nil
		},
		"crud delete": func() (cli.Command, error) {
			return &DeleteCommand{crudCommand: sub()}, nil
		},
	}
}

func (c *Command) Synopsis() string {
	return "Read and write bucket objects"
}

func (c *Command) Help() string {
	return `Usage: ikos crud <subcommand> [options] <service> <access> <id> [args]

  This command groups subcommands for the CRUD object storage API.

  <service> and <access> accept the platform constants in any case style,
  for example data-service or DATA_SERVICE, and read or READ.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// target is the service address every CRUD call starts with.
type target struct {
	svc, rw, id string
}

// crudCommand carries the flags shared by every crud subcommand.
type crudCommand struct {
	*base.Command

	flagBuckets []string
	flagLimit   int
}

func (c *crudCommand) flags(name string) *base.FlagSet {
	f := c.NewFlagSet("crud " + name)

	f.StringSliceVar(
		&c.flagBuckets, "buckets",
		"Comma-separated bucket paths",
	)

	return f
}

func (c *crudCommand) limitFlag(f *base.FlagSet) {
	f.IntVar(
		&c.flagLimit, "limit", 0,
		"Maximum number of results (0 for the platform default)",
	)
}

// run parses args and calls fn with a logged-in CRUD service. args must hold
// the three target arguments followed by minExtra to maxExtra more.
func (c *crudCommand) run(f *base.FlagSet, args []string, minExtra, maxExtra int, usage string, fn func(ctx context.Context, svc *crud.Service, t target, rest []string) (any, error)) int {
	if err := f.Parse(args); err != nil {
		return c.Error("parsing flags", err)
	}
	if n := f.NArg() - 3; n < minExtra || n > maxExtra {
		c.UI.Error(fmt.Sprintf("usage: ikos %s [options] <service> <access> <id>%s", f.Name(), usage))
		return 1
	}

	t := target{
		svc: crud.NormalizeValue(f.Arg(0)),
		rw:  crud.NormalizeValue(f.Arg(1)),
		id:  f.Arg(2),
	}

	ctx, cancel := c.Context()
	defer cancel()

	client, err := c.Client(ctx, true)
	if err != nil {
		return c.Error("creating client", err)
	}

	out, err := fn(ctx, crud.New(client), t, f.Args()[3:])
	if err != nil {
		return c.Error("calling crud api", err)
	}

	if err := c.Output(out); err != nil {
		return c.Error("writing output", err)
	}
	return 0
}

type QueryCommand struct {
	crudCommand

	flagQuery string
}

func (c *QueryCommand) Synopsis() string { return "List or search objects" }

func (c *QueryCommand) Help() string {
	return `Usage: ikos crud query [options] <service> <access> <id>

  Lists the objects in the given buckets, or runs -query against them.` + c.Flags().Help()
}

func (c *QueryCommand) Flags() *base.FlagSet {
	f := c.flags("query")
	c.limitFlag(f)

	f.StringVar(
		&c.flagQuery, "query", "",
		"Query object as JSON",
	)

	return f
}

func (c *QueryCommand) Run(args []string) int {
	return c.run(c.Flags(), args, 0, 0, "",
		func(ctx context.Context, svc *crud.Service, t target, _ []string) (any, error) {
			query, err := base.ParseJSONObject("query", c.flagQuery)
			if err != nil {
				return nil, err
			}

			var resp ikos.Response
			if query == nil {
				resp, err = svc.SimpleQuery(ctx, t.svc, t.rw, t.id, c.flagBuckets, c.flagLimit)
			} else {
				resp, err = svc.AdvancedQuery(ctx, t.svc, t.rw, t.id, query, c.flagBuckets, c.flagLimit)
			}
			if err != nil {
				return nil, err
			}
			return ikos.ResolveWithDataOrArray(resp)
		})
}

type CountCommand struct {
	crudCommand
}

func (c *CountCommand) Synopsis() string { return "Count objects" }

func (c *CountCommand) Help() string {
	return `Usage: ikos crud count [options] <service> <access> <id>` + c.flags("count").Help()
}

func (c *CountCommand) Run(args []string) int {
	return c.run(c.flags("count"), args, 0, 0, "",
		func(ctx context.Context, svc *crud.Service, t target, _ []string) (any, error) {
			resp, err := svc.AdvancedCount(ctx, t.svc, t.rw, t.id, c.flagBuckets)
			if err != nil {
				return nil, err
			}
			return ikos.ResolveWithData(resp)
		})
}

type GetCommand struct {
	crudCommand
}

func (c *GetCommand) Synopsis() string { return "Show one object" }

func (c *GetCommand) Help() string {
	return `Usage: ikos crud get [options] <service> <access> <id> <object-id>` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := c.flags("get")
	c.limitFlag(f)
	return f
}

func (c *GetCommand) Run(args []string) int {
	return c.run(c.Flags(), args, 1, 1, " <object-id>",
		func(ctx context.Context, svc *crud.Service, t target, rest []string) (any, error) {
			resp, err := svc.GetByID(ctx, t.svc, t.rw, t.id, rest[0], c.flagBuckets, c.flagLimit)
			if err != nil {
				return nil, err
			}
			return ikos.ResolveWithDataOrObject(resp)
		})
}

type CreateCommand struct {
	crudCommand

	flagData string
}

func (c *CreateCommand) Synopsis() string { return "Store a JSON object" }

func (c *CreateCommand) Help() string {
	return `Usage: ikos crud create [options] -data=<json> <service> <access> <id>` + c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := c.flags("create")

	f.StringVar(
		&c.flagData, "data", "",
		"Object to store, as JSON (required)",
	)

	return f
}

func (c *CreateCommand) Run(args []string) int {
	return c.run(c.Flags(), args, 0, 0, "",
		func(ctx context.Context, svc *crud.Service, t target, _ []string) (any, error) {
			object, err := base.ParseJSONObject("data", c.flagData)
			if err != nil {
				return nil, err
			}
			if object == nil {
				return nil, errors.New("-data is required")
			}

			resp, err := svc.CreateJSONObject(ctx, t.svc, t.rw, t.id, c.flagBuckets, object)
			if err != nil {
				return nil, err
			}
			return ikos.ResolveWithDataOrObject(resp)
		})
}

type UploadCommand struct {
	crudCommand
}

func (c *UploadCommand) Synopsis() string { return "Upload a file into buckets" }

func (c *UploadCommand) Help() string {
	return `Usage: ikos crud upload [options] <service> <access> <id> <path>

  Uploads the file at <path> as-is.` + c.flags("upload").Help()
}

func (c *UploadCommand) Run(args []string) int {
	return c.run(c.flags("upload"), args, 1, 1, " <path>",
		func(ctx context.Context, svc *crud.Service, t target, rest []string) (any, error) {
			file, err := afero.ReadFile(c.Fs, rest[0])
			if err != nil {
				return nil, fmt.Errorf("error reading %s: %w", rest[0], err)
			}
			c.Log.Debug("uploading file", "path", rest[0], "bytes", len(file))

			resp, err := svc.CreateBucketFile(ctx, t.svc, t.rw, t.id, c.flagBuckets, file)
			if err != nil {
				return nil, err
			}
			return ikos.ResolveWithDataOrObject(resp)
		})
}

type DeleteCommand struct {
	crudCommand

	flagQuery string
}

func (c *DeleteCommand) Synopsis() string { return "Delete objects" }

func (c *DeleteCommand) Help() string {
	return `Usage: ikos crud delete [options] <service> <access> <id> [object-id]

  Deletes the objects matching -query, or the single object given by
  object-id. Exactly one of the two must be given.` + c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := c.flags("delete")

	f.StringVar(
		&c.flagQuery, "query", "",
		"Delete the objects matching this JSON query",
	)

	return f
}

func (c *DeleteCommand) Run(args []string) int {
	return c.run(c.Flags(), args, 0, 1, " [object-id]",
		func(ctx context.Context, svc *crud.Service, t target, rest []string) (any, error) {
			var (
				resp ikos.Response
				err  error
			)
			switch {
			case len(rest) == 1 && c.flagQuery == "":
				endpoint := crud.CompileParts(t.svc, t.rw, t.id, "/object/"+ikos.EscapeSegment(rest[0]))
				resp, err = svc.Raw(ctx, http.MethodDelete, endpoint, crud.BucketParams(c.flagBuckets, 0), nil, ikos.CallOptions{})
			case len(rest) == 0 && c.flagQuery != "":
				query, perr := base.ParseJSONObject("query", c.flagQuery)
				if perr != nil {
					return nil, perr
				}
				resp, err = svc.DeleteByQuery(ctx, t.svc, t.rw, t.id, c.flagBuckets, query)
			default:
				return nil, errors.New("exactly one of -query or an object id is required")
			}
			if err != nil {
				return nil, err
			}
			return ikos.DecodeResponseMeta(resp)
		})
}
