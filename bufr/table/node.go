// Package table builds an in-memory tree of descriptor nodes from a
// DataProvider's flat per-subset node description and answers path-based
// node lookups and dimension-path derivation (spec §4.1).
package table

import (
	"github.com/ncep-emc/bufrquery/bufr"
	"github.com/ncep-emc/bufrquery/bufr/query"
)

// BufrNode is one node in a SubsetTable's tree.
type BufrNode struct {
	NodeIdx  int
	Type     bufr.Type
	Tag      string
	TypeInfo bufr.TypeInfo
	Children []*BufrNode

	parent *BufrNode
}

// Name returns the node's mnemonic with its framing characters stripped
// (tags are stored wrapped in two delimiter characters, spec §4.1).
func (n *BufrNode) Name() string {
	if len(n.Tag) < 2 {
		return n.Tag
	}
	return n.Tag[1 : len(n.Tag)-1]
}

// GetPathNodes returns the root-to-node path, inclusive of both ends.
func (n *BufrNode) GetPathNodes() []*BufrNode {
	var rev []*BufrNode
	for cur := n; cur != nil; cur = cur.parent {
		rev = append(rev, cur)
	}
	path := make([]*BufrNode, len(rev))
	for i, node := range rev {
		path[len(rev)-1-i] = node
	}
	return path
}

// DimAdding reports whether a node's type introduces an exported array
// dimension. Only true "countable" replication types do; DelayedBinary
// (a presence gate, not a repeated axis) and Repeat/StackedRepeat (plain
// value-bearing replication counters, not named sequence branches) do not,
// matching the original QueryRunner::getDimInfo.
func DimAdding(t bufr.Type) bool {
	switch t {
	case bufr.TypeDelayedRep, bufr.TypeFixedRep, bufr.TypeDelayedRepStacked:
		return true
	default:
		return false
	}
}

// GetDimPaths returns the slash-joined dim-path string at each exported
// dimension level, the first always being "*" for the implicit outermost
// "message" dimension.
func (n *BufrNode) GetDimPaths() []string {
	paths, _ := n.dimInfo()
	return paths
}

// GetDimIdxs returns the path-index (into GetPathNodes(), 0 == the subset
// root) of each exported dimension's bounding node; the first is always 0.
func (n *BufrNode) GetDimIdxs() []int {
	_, idxs := n.dimInfo()
	return idxs
}

func (n *BufrNode) dimInfo() ([]string, []int) {
	pathNodes := n.GetPathNodes()

	dimPaths := []string{"*"}
	dimIdxs := []int{0}

	current := "*"
	for branchIdx := 1; branchIdx < len(pathNodes); branchIdx++ {
		node := pathNodes[branchIdx]
		current = current + "/" + node.Name()
		if DimAdding(node.Type) {
			dimPaths = append(dimPaths, current)
			dimIdxs = append(dimIdxs, branchIdx)
		}
	}
	return dimPaths, dimIdxs
}

// matchName reports whether a node's stripped mnemonic equals name.
func matchName(n *BufrNode, name string) bool {
	return n.Name() == name
}

// GetNodeForPath walks the tree from this node, matching each component's
// name at the current level; if Index > 0 it picks that 1-based occurrence
// among siblings with a matching name. Returns nil, not an error, if no
// node matches (spec §4.1).
func (n *BufrNode) GetNodeForPath(path []*query.QueryComponent) *BufrNode {
	cur := n
	for _, comp := range path {
		var matches []*BufrNode
		for _, child := range cur.Children {
			if matchName(child, comp.Name) {
				matches = append(matches, child)
			}
		}
		if len(matches) == 0 {
			return nil
		}
		if comp.Index > 0 {
			if comp.Index > len(matches) {
				return nil
			}
			cur = matches[comp.Index-1]
		} else {
			cur = matches[0]
		}
	}
	return cur
}

// AllNodesForPath is like GetNodeForPath but returns every node matching
// the final component instead of only one; the final component's index is
// ignored here — used by TargetResolver, which applies that index and
// detects ambiguity itself (spec §4.2).
func (n *BufrNode) AllNodesForPath(path []*query.QueryComponent) []*BufrNode {
	if len(path) == 0 {
		return []*BufrNode{n}
	}
	cur := []*BufrNode{n}
	for i, comp := range path {
		last := i == len(path)-1
		var next []*BufrNode
		for _, parent := range cur {
			var matches []*BufrNode
			for _, child := range parent.Children {
				if matchName(child, comp.Name) {
					matches = append(matches, child)
				}
			}
			if len(matches) == 0 {
				continue
			}
			switch {
			case last:
				// Index narrowing (including out-of-range
				// handling) for the endpoint is the caller's
				// responsibility (TargetResolver), since an
				// out-of-range index keeps the full match set
				// rather than failing (spec §9).
				next = append(next, matches...)
			case comp.Index > 0:
				if comp.Index <= len(matches) {
					next = append(next, matches[comp.Index-1])
				}
			default:
				next = append(next, matches[0])
			}
		}
		cur = next
		if len(cur) == 0 {
			return nil
		}
	}
	return cur
}
