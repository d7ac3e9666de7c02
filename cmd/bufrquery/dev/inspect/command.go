// Package inspect implements "bufrquery dev inspect", which prints the
// node tree built from each subset fixture under -subset-dir, for
// exercising and debugging memprovider fixtures without a real decoder.
package inspect

import (
	"flag"
	"fmt"
	"strings"

	"github.com/ncep-emc/bufrquery/bufr/table"
	"github.com/ncep-emc/bufrquery/cmd/bufrquery/dev"
	"github.com/ncep-emc/bufrquery/pkg/charm"
)

var Spec = &charm.Spec{
	Name:  "inspect",
	Usage: "dev inspect",
	Short: "print the node tree of every subset fixture",
	New:   New,
}

func init() {
	dev.Spec.Add(Spec)
}

type Command struct {
	*dev.Command
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	return &Command{Command: parent.(*dev.Command)}, nil
}

func (c *Command) Run(args []string) error {
	providers, err := c.LoadSubsets()
	if err != nil {
		return err
	}

	for _, p := range providers {
		fmt.Printf("subset %s\n", p.SubsetName())
		tbl := table.NewSubsetTable(p)
		printNode(tbl.Root, 0)
	}
	return nil
}

func printNode(n *table.BufrNode, depth int) {
	fmt.Printf("%s#%d %s type=%s bits=%d scale=%d ref=%d unit=%q\n",
		strings.Repeat("  ", depth), n.NodeIdx, n.Name(), n.Type,
		n.TypeInfo.Bits, n.TypeInfo.Scale, n.TypeInfo.Reference, n.TypeInfo.Unit)
	for _, child := range n.Children {
		printNode(child, depth+1)
	}
}
