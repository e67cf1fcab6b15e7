package version

import (
	"github.com/hashicorp-forge/ikos/internal/cmd/base"
	"github.com/hashicorp-forge/ikos/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the ikos version"
}

func (c *Command) Help() string {
	return `Usage: ikos version`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.String())
	return 0
}
