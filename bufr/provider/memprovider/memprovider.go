// Package memprovider is an in-memory provider.DataProvider used by tests
// and the "dev inspect" CLI subcommand to build synthetic BUFR subsets
// without a bit-level decoder (spec §1 scope, SPEC_FULL.md B.4).
package memprovider

import (
	"fmt"

	"github.com/ncep-emc/bufrquery/bufr"
)

// NodeDef describes one table node at a fixed absolute index.
type NodeDef struct {
	Tag      string
	Type     bufr.Type
	Jmpb     int
	Link     int
	TypeInfo bufr.TypeInfo
}

// StreamEntry is one value-stream cursor: the node it references and its
// decoded value.
type StreamEntry struct {
	Node int
	Val  float64
}

// Subset is a complete synthetic subset: its node table (indexed from
// Inode through Isc inclusive) and its linear value stream.
type Subset struct {
	Name   string
	Inode  int
	Isc    int
	Nodes  map[int]NodeDef
	Stream []StreamEntry
}

// Provider adapts a Subset to provider.DataProvider. The zero value is not
// usable; construct with NewProvider or a Builder.
type Provider struct {
	s *Subset
}

// NewProvider wraps a fully-built Subset.
func NewProvider(s *Subset) *Provider {
	return &Provider{s: s}
}

func (p *Provider) node(n int) NodeDef {
	nd, ok := p.s.Nodes[n]
	if !ok {
		panic(fmt.Sprintf("memprovider: no node at index %d", n))
	}
	return nd
}

func (p *Provider) Inode() int         { return p.s.Inode }
func (p *Provider) Isc(int) int        { return p.s.Isc }
func (p *Provider) NVal() int          { return len(p.s.Stream) }
func (p *Provider) SubsetName() string { return p.s.Name }

func (p *Provider) Inv(cursor int) int {
	return p.s.Stream[cursor-1].Node
}

func (p *Provider) Val(cursor int) float64 {
	return p.s.Stream[cursor-1].Val
}

func (p *Provider) Typ(node int) bufr.Type {
	return p.node(node).Type
}

func (p *Provider) Tag(node int) string {
	return "\"" + p.node(node).Tag + "\""
}

func (p *Provider) Jmpb(node int) int {
	return p.node(node).Jmpb
}

func (p *Provider) Link(node int) int {
	return p.node(node).Link
}

func (p *Provider) TypeInfo(node int) bufr.TypeInfo {
	return p.node(node).TypeInfo
}
