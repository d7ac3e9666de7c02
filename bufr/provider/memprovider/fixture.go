package memprovider

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ncep-emc/bufrquery/bufr"
)

// fixtureNode is the YAML-facing shape of one NodeDef.
type fixtureNode struct {
	Index     int    `yaml:"index"`
	Tag       string `yaml:"tag"`
	Type      string `yaml:"type"`
	Jmpb      int    `yaml:"jmpb"`
	Link      int    `yaml:"link"`
	Reference int64  `yaml:"reference"`
	Bits      int    `yaml:"bits"`
	Scale     int    `yaml:"scale"`
	Unit      string `yaml:"unit"`
	Str       bool   `yaml:"str"`
	Unsigned  bool   `yaml:"unsigned"`
	Is64Bit   bool   `yaml:"is64bit"`
}

// fixtureStream is the YAML-facing shape of one StreamEntry.
type fixtureStream struct {
	Node int     `yaml:"node"`
	Val  float64 `yaml:"val"`
}

// fixtureSubset is the on-disk YAML fixture format loaded by LoadFixture,
// which the CLI's fixture loading (root.Command.LoadSubsets, used by "run"
// and "dev inspect") calls for each file under -subset-dir.
type fixtureSubset struct {
	Name   string          `yaml:"name"`
	Inode  int             `yaml:"inode"`
	Nodes  []fixtureNode   `yaml:"nodes"`
	Stream []fixtureStream `yaml:"stream"`
}

var typeByName = map[string]bufr.Type{
	"Subset":            bufr.TypeSubset,
	"Sequence":          bufr.TypeSequence,
	"Repeat":            bufr.TypeRepeat,
	"StackedRepeat":     bufr.TypeStackedRepeat,
	"DelayedRep":        bufr.TypeDelayedRep,
	"FixedRep":          bufr.TypeFixedRep,
	"DelayedRepStacked": bufr.TypeDelayedRepStacked,
	"DelayedBinary":     bufr.TypeDelayedBinary,
	"Number":            bufr.TypeNumber,
	"Character":         bufr.TypeCharacter,
}

// LoadFixture parses a YAML-encoded Subset fixture.
func LoadFixture(data []byte) (*Subset, error) {
	var f fixtureSubset
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("memprovider: parsing fixture: %w", err)
	}

	s := &Subset{
		Name:  f.Name,
		Inode: f.Inode,
		Nodes: make(map[int]NodeDef, len(f.Nodes)),
	}

	for _, n := range f.Nodes {
		typ, ok := typeByName[n.Type]
		if !ok {
			return nil, fmt.Errorf("memprovider: unknown node type %q", n.Type)
		}
		s.Nodes[n.Index] = NodeDef{
			Tag:  n.Tag,
			Type: typ,
			Jmpb: n.Jmpb,
			Link: n.Link,
			TypeInfo: bufr.TypeInfo{
				Reference: n.Reference,
				Bits:      n.Bits,
				Scale:     n.Scale,
				Unit:      n.Unit,
				Str:       n.Str,
				Unsigned:  n.Unsigned,
				Is64Bit:   n.Is64Bit,
			},
		}
		if n.Index > s.Isc {
			s.Isc = n.Index
		}
	}

	for _, e := range f.Stream {
		s.Stream = append(s.Stream, StreamEntry{Node: e.Node, Val: e.Val})
	}

	return s, nil
}
