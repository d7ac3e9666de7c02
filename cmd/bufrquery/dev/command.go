// Package dev groups development/debugging subcommands.
package dev

import (
	"flag"

	"github.com/ncep-emc/bufrquery/cmd/bufrquery/root"
	"github.com/ncep-emc/bufrquery/pkg/charm"
)

var Spec = &charm.Spec{
	Name:  "dev",
	Usage: "dev sub-command [arguments...]",
	Short: "run a development/debugging tool",
	New:   New,
}

func init() {
	root.Bufrquery.Add(Spec)
}

type Command struct {
	*root.Command
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	return &Command{Command: parent.(*root.Command)}, nil
}

func (c *Command) Run(args []string) error {
	return charm.NoRun(args)
}
