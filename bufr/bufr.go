// Package bufr implements the core query engine for a BUFR subset: it
// resolves path-based queries against a table of descriptor nodes, walks a
// subset's decoded value stream once to collect per-target data, and
// assembles the collected frames into dense (possibly jagged) N-dimensional
// arrays.
//
// The bit-level BUFR decoder that supplies node metadata and values is
// external to this package (see the DataProvider interface in
// bufr/provider); this package only consumes it.
package bufr

// MissingValue is the sentinel written into a result array wherever no data
// was collected for a dimension slot, or for a query that never resolved to
// a table node. Any value whose magnitude is >= MissingValue is treated as
// missing by downstream consumers.
const MissingValue = 10e10

// Type enumerates the kinds of descriptor node that can appear in a subset's
// table. Repeat, StackedRepeat, DelayedRep, FixedRep, DelayedRepStacked, and
// DelayedBinary are all "replicating" node types that bound an occurring
// subsequence; Sequence is a non-replicating grouping node.
type Type int

const (
	TypeSubset Type = iota
	TypeSequence
	TypeRepeat
	TypeStackedRepeat
	TypeDelayedRep
	TypeFixedRep
	TypeDelayedRepStacked
	TypeDelayedBinary
	TypeNumber
	TypeCharacter
)

func (t Type) String() string {
	switch t {
	case TypeSubset:
		return "Subset"
	case TypeSequence:
		return "Sequence"
	case TypeRepeat:
		return "Repeat"
	case TypeStackedRepeat:
		return "StackedRepeat"
	case TypeDelayedRep:
		return "DelayedRep"
	case TypeFixedRep:
		return "FixedRep"
	case TypeDelayedRepStacked:
		return "DelayedRepStacked"
	case TypeDelayedBinary:
		return "DelayedBinary"
	case TypeNumber:
		return "Number"
	case TypeCharacter:
		return "Character"
	default:
		return "Unknown"
	}
}

// IsReplicating reports whether nodes of this type bound an occurring
// subsequence whose count must be tracked during collection.
func (t Type) IsReplicating() bool {
	switch t {
	case TypeRepeat, TypeStackedRepeat, TypeDelayedRep, TypeFixedRep,
		TypeDelayedRepStacked, TypeDelayedBinary:
		return true
	default:
		return false
	}
}

// IsQueryNode reports whether a node of this type is one whose open/close
// must be tracked on the FrameCollector's path stack during a single pass
// over the value stream (spec.md §4.3, isQueryNode).
func (t Type) IsQueryNode() bool {
	switch t {
	case TypeDelayedRep, TypeFixedRep, TypeDelayedRepStacked, TypeDelayedBinary:
		return true
	default:
		return false
	}
}

// TypeInfo carries the decode-time numeric/string typing for a node: its
// reference value and bit width (for integer decoding), its scale (decimal
// exponent), and its physical unit string, or whether it's string-typed.
type TypeInfo struct {
	Reference int64
	Bits      int
	Scale     int
	Unit      string
	Str       bool
	Unsigned  bool
	Is64Bit   bool
}

// IsString reports whether this type info describes a character (string)
// field rather than a numeric one.
func (i TypeInfo) IsString() bool { return i.Str }

// IsInteger reports whether this type info describes a decoded integer
// field (scale == 0) as opposed to a field that must be interpreted as a
// floating point value.
func (i TypeInfo) IsInteger() bool { return !i.Str && i.Scale == 0 }

// IsSigned reports whether an integer type info is signed.
func (i TypeInfo) IsSigned() bool { return !i.Unsigned }
