// Package collect implements the single-pass value-stream walk that turns
// a resolved Targets vector plus a subset's DataProvider into one DataFrame
// (spec §4.3).
package collect

import (
	"github.com/ncep-emc/bufrquery/bufr"
	"github.com/ncep-emc/bufrquery/bufr/target"
)

// NodeData is the per-node, per-frame accumulator: the values captured at
// a value-endpoint node, and the occurrence counts captured at a
// replication node's child (spec §3).
type NodeData struct {
	Values []float64
	Counts []int
}

// DataField is one target's collected data within a frame: the flattened
// values in stream order, and the nested per-level occurrence counts
// (spec §3, "|seqCounts| = |seqPath| + 1").
type DataField struct {
	Target    *target.Target
	Data      []float64
	SeqCounts [][]int
}

// DataFrame is the collected per-target data for one subset.
type DataFrame struct {
	Targets target.Targets
	Fields  []DataField
}

// FieldAtIdx returns a pointer to the DataField for the target at
// targetIdx, so callers can populate it in place.
func (f *DataFrame) FieldAtIdx(targetIdx int) *DataField {
	return &f.Fields[targetIdx]
}

func newDataFrame(targets target.Targets) *DataFrame {
	return &DataFrame{
		Targets: targets,
		Fields:  make([]DataField, len(targets)),
	}
}

// missingField returns the DataField for an unresolved (NodeIdx == 0)
// target.
func missingField(t *target.Target) DataField {
	return DataField{
		Target:    t,
		Data:      []float64{bufr.MissingValue},
		SeqCounts: [][]int{{1}},
	}
}
