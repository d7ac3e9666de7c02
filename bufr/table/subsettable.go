package table

import (
	"github.com/ncep-emc/bufrquery/bufr/provider"
	"github.com/ncep-emc/bufrquery/bufr/query"
)

// SubsetTable is the in-memory tree built from a DataProvider's linear
// per-subset node description (nodes Inode()..Isc(Inode())).
type SubsetTable struct {
	Root  *BufrNode
	nodes OffsetArray[*BufrNode]
}

// NewSubsetTable builds a SubsetTable for the provider's current subset.
func NewSubsetTable(p provider.DataProvider) *SubsetTable {
	inode := p.Inode()
	isc := p.Isc(inode)
	nodes := NewOffsetArray[*BufrNode](inode, isc-inode+1)

	for idx := inode; idx <= isc; idx++ {
		*nodes.At(idx) = &BufrNode{
			NodeIdx:  idx,
			Type:     p.Typ(idx),
			Tag:      p.Tag(idx),
			TypeInfo: p.TypeInfo(idx),
		}
	}

	root := *nodes.At(inode)
	for idx := inode + 1; idx <= isc; idx++ {
		node := *nodes.At(idx)
		parentIdx := p.Jmpb(idx)
		if parentIdx == 0 || parentIdx < inode {
			parentIdx = inode
		}
		parent := *nodes.At(parentIdx)
		node.parent = parent
		parent.Children = append(parent.Children, node)
	}

	return &SubsetTable{Root: root, nodes: nodes}
}

// GetNodeForPath walks the tree matching each component's name at the
// current level, starting from the subset root; returns nil if no node
// matches (not an error — spec §4.1).
func (t *SubsetTable) GetNodeForPath(path []*query.QueryComponent) *BufrNode {
	return t.Root.GetNodeForPath(path)
}

// AllNodesForPath is like GetNodeForPath but returns every endpoint that
// matches the final component, ignoring that component's index.
func (t *SubsetTable) AllNodesForPath(path []*query.QueryComponent) []*BufrNode {
	return t.Root.AllNodesForPath(path)
}

// NodeAt returns the node at the given absolute node index.
func (t *SubsetTable) NodeAt(idx int) *BufrNode {
	return *t.nodes.At(idx)
}
