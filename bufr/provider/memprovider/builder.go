package memprovider

import "github.com/ncep-emc/bufrquery/bufr"

// Builder assembles a Subset one node/value at a time, auto-assigning node
// indices in declaration order starting at inode. It exists so tests and
// fixtures can describe a scenario as a sequence of "add this node, then
// these values" calls instead of hand-computing absolute indices.
type Builder struct {
	s    Subset
	next int
}

// NewBuilder starts a Subset named name whose root (Subset-typed) node
// occupies index inode.
func NewBuilder(name string, inode int) *Builder {
	b := &Builder{
		s: Subset{
			Name:  name,
			Inode: inode,
			Nodes: make(map[int]NodeDef),
		},
		next: inode,
	}
	b.s.Nodes[inode] = NodeDef{Tag: name, Type: bufr.TypeSubset}
	b.next = inode + 1
	return b
}

// Node appends a node after the last one added, with jmpb/link given as
// absolute indices (0 meaning "the subset root" for jmpb, or "closes with
// enclosing sequence" for link). Returns the node's assigned index.
func (b *Builder) Node(tag string, typ bufr.Type, jmpb, link int, info bufr.TypeInfo) int {
	idx := b.next
	b.next++
	b.s.Nodes[idx] = NodeDef{Tag: tag, Type: typ, Jmpb: jmpb, Link: link, TypeInfo: info}
	return idx
}

// Emit appends one value-stream cursor referencing node.
func (b *Builder) Emit(node int, val float64) *Builder {
	b.s.Stream = append(b.s.Stream, StreamEntry{Node: node, Val: val})
	return b
}

// Build finalizes the Subset, setting Isc to the last assigned index.
func (b *Builder) Build() *Subset {
	b.s.Isc = b.next - 1
	out := b.s
	return &out
}
