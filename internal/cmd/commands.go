package cmd

import (
	"maps"

	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/ikos/internal/cmd/base"
	"github.com/hashicorp-forge/ikos/internal/cmd/commands/crud"
	"github.com/hashicorp-forge/ikos/internal/cmd/commands/group"
	"github.com/hashicorp-forge/ikos/internal/cmd/commands/person"
	"github.com/hashicorp-forge/ikos/internal/cmd/commands/session"
	"github.com/hashicorp-forge/ikos/internal/cmd/commands/version"
)

// Commands is the mapping of all available ikos commands.
var Commands map[string]cli.CommandFactory

func initCommands(b *base.Command) {
	Commands = map[string]cli.CommandFactory{
		"login": func() (cli.Command, error) {
			return &session.LoginCommand{Command: b}, nil
		},
		"logout": func() (cli.Command, error) {
			return &session.LogoutCommand{Command: b}, nil
		},
		"keepalive": func() (cli.Command, error) {
			return &session.KeepAliveCommand{Command: b}, nil
		},
		"person": func() (cli.Command, error) {
			return &person.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}

	maps.Copy(Commands, group.Commands(b))
	maps.Copy(Commands, crud.Commands(b))
}
