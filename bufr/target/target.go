// Package target resolves query paths against a subset's table into
// concrete Targets plus the traversal masks a FrameCollector needs (spec
// §4.2).
package target

import (
	"github.com/ncep-emc/bufrquery/bufr"
	"github.com/ncep-emc/bufrquery/bufr/query"
)

// TargetComponent is one element of a resolved Target's path: the query
// component that produced it (nil for the synthetic subset component at
// index 0), the table node index it resolved to ("branch"), and the node's
// structural type.
type TargetComponent struct {
	QueryComponent *query.QueryComponent
	Branch         int
	Type           bufr.Type
}

// Target is a fully- or partially-resolved query: NodeIdx == 0 means the
// query never matched any table node ("empty target", spec §3/§4.2) and
// downstream collection fills it with MissingValue.
type Target struct {
	Name          string
	QueryStr      string
	NodeIdx       int
	Path          []TargetComponent
	SeqPath       []int
	TypeInfo      bufr.TypeInfo
	DimPaths      []string
	ExportDimIdxs []int
	// DimSeqIdx maps each exported dimension level (parallel to DimPaths)
	// to the index into SeqPath/DataField.SeqCounts whose counts drive
	// that dimension's size. Level 0 (the implicit per-message row
	// dimension) has no SeqPath entry and is always -1.
	DimSeqIdx []int
}

// emptyTarget builds the placeholder Target used when a query doesn't
// apply to this subset, or none of its sub-queries resolved to a node.
func emptyTarget(name, queryStr string) *Target {
	return &Target{
		Name:          name,
		QueryStr:      queryStr,
		NodeIdx:       0,
		DimPaths:      []string{"*"},
		ExportDimIdxs: []int{0},
		DimSeqIdx:     []int{-1},
		TypeInfo:      bufr.TypeInfo{},
	}
}

// isSeqPathType reports whether a node's type should contribute to a
// Target's SeqPath — any node that isn't a leaf value (Number/Character)
// or the synthetic subset root.
func isSeqPathType(t bufr.Type) bool {
	switch t {
	case bufr.TypeSubset, bufr.TypeNumber, bufr.TypeCharacter:
		return false
	default:
		return true
	}
}
